package query

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Op int

const (
	OpEqualFold Op = iota + 1
	OpRange
	OpSearch
	OpAnyOf
)

// Predicate is one normalized filter condition. Columns always come from a
// FilterSchema, never from the request.
type Predicate struct {
	Key     string
	Op      Op
	Columns []string
	Value   string
	Values  []string
	Min     *float64
	Max     *float64
}

type StatusRule struct {
	Key     string
	Column  string
	Default string
}

type EqualRule struct {
	Key    string
	Column string
}

type RangeRule struct {
	MinKey string
	MaxKey string
	Column string
}

type SearchRule struct {
	Key     string
	Columns []string
}

type AnyOfRule struct {
	Key    string
	Column string
}

// FilterSchema lists the filter keys an entity understands.
type FilterSchema struct {
	Status *StatusRule
	Equal  []EqualRule
	Range  []RangeRule
	Search *SearchRule
	AnyOf  []AnyOfRule
}

type Filters struct {
	Predicates []Predicate
	// Status is the resolved status value, empty when no status filter applies.
	Status string
}

func (s FilterSchema) Normalize(req ListRequest) Filters {
	var out Filters

	if rule := s.Status; rule != nil {
		status, ok := req.StatusOr(rule.Key)
		if !ok && !req.StatusCleared {
			status = rule.Default
		}
		if status != "" {
			out.Status = status
			out.Predicates = append(out.Predicates, Predicate{
				Key: rule.Key, Op: OpEqualFold, Columns: []string{rule.Column}, Value: status,
			})
		}
	}

	for _, rule := range s.Equal {
		if v, ok := String(req.Filter[rule.Key]); ok {
			out.Predicates = append(out.Predicates, Predicate{
				Key: rule.Key, Op: OpEqualFold, Columns: []string{rule.Column}, Value: v,
			})
		}
	}

	for _, rule := range s.Range {
		p := Predicate{Key: rule.MinKey, Op: OpRange, Columns: []string{rule.Column}}
		if v, ok := Float(req.Filter[rule.MinKey]); ok {
			p.Min = &v
		}
		if v, ok := Float(req.Filter[rule.MaxKey]); ok {
			p.Max = &v
		}
		if p.Min != nil || p.Max != nil {
			out.Predicates = append(out.Predicates, p)
		}
	}

	if rule := s.Search; rule != nil {
		if v, ok := String(req.Filter[rule.Key]); ok {
			out.Predicates = append(out.Predicates, Predicate{
				Key: rule.Key, Op: OpSearch, Columns: rule.Columns, Value: v,
			})
		}
	}

	for _, rule := range s.AnyOf {
		if values := Strings(req.Filter[rule.Key]); len(values) > 0 {
			out.Predicates = append(out.Predicates, Predicate{
				Key: rule.Key, Op: OpAnyOf, Columns: []string{rule.Column}, Values: values,
			})
		}
	}

	return out
}

// Where renders the predicates as a parameterised WHERE clause.
func (f Filters) Where() *Where {
	w := &Where{}

	for _, p := range f.Predicates {
		switch p.Op {
		case OpEqualFold:
			w.And(fmt.Sprintf("LOWER(%s) = LOWER(%s)", p.Columns[0], w.Arg(p.Value)))
		case OpRange:
			if p.Min != nil {
				w.And(fmt.Sprintf("%s >= %s", p.Columns[0], w.Arg(*p.Min)))
			}
			if p.Max != nil {
				w.And(fmt.Sprintf("%s <= %s", p.Columns[0], w.Arg(*p.Max)))
			}
		case OpSearch:
			ph := w.Arg("%" + escapeLike(p.Value) + "%")
			parts := make([]string, len(p.Columns))
			for i, col := range p.Columns {
				parts[i] = fmt.Sprintf("%s ILIKE %s", col, ph)
			}
			w.And("(" + strings.Join(parts, " OR ") + ")")
		case OpAnyOf:
			w.And(fmt.Sprintf("%s && %s", p.Columns[0], w.Arg(pq.Array(p.Values))))
		}
	}

	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Where accumulates AND-ed clauses and their positional arguments.
type Where struct {
	clauses []string
	args    []any
}

// Arg registers v and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *Where) And(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []any {
	return append([]any(nil), w.args...)
}

// Paged returns the LIMIT/OFFSET suffix for p and the full argument list.
// Unbounded pages produce no suffix.
func (w *Where) Paged(p Page) (string, []any) {
	args := w.Args()
	if !p.Bounded() {
		return "", args
	}

	n := len(args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), append(args, p.Limit, p.Offset())
}
