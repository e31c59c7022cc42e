package query

import (
	"slices"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) SQL() string {
	if d == Asc {
		return "ASC"
	}
	return "DESC"
}

// Sort is a resolved sort request. Field is a storage field name; Derived
// fields are not stored columns and must be sorted after aggregation.
type Sort struct {
	Field     string
	Direction Direction
	Derived   bool
}

type SortSchema struct {
	// Allowed holds the client-facing sort keys.
	Allowed []string
	// Aliases maps client keys to storage fields. Alias keys are allowed too.
	Aliases map[string]string
	// Columns maps storage fields to SQL columns.
	Columns map[string]string
	Derived []string
	Default string
	// TieBreak keeps ORDER BY deterministic across pages.
	TieBreak string
}

func (s SortSchema) Resolve(sortBy, sortOrder string) Sort {
	if sortBy == "" {
		sortBy = s.Default
	}

	if !s.allowed(sortBy) {
		return Sort{Field: s.Default, Direction: Desc}
	}

	field := sortBy
	if alias, ok := s.Aliases[sortBy]; ok {
		field = alias
	}

	dir := Desc
	if strings.EqualFold(strings.TrimSpace(sortOrder), string(Asc)) {
		dir = Asc
	}

	return Sort{Field: field, Direction: dir, Derived: slices.Contains(s.Derived, field)}
}

func (s SortSchema) allowed(key string) bool {
	if _, ok := s.Aliases[key]; ok {
		return true
	}
	return slices.Contains(s.Allowed, key)
}

// OrderBy renders the ORDER BY expression for the store. A derived sort cannot
// be expressed natively, so rows are fetched in tie-break order instead.
func (s SortSchema) OrderBy(sort Sort) string {
	if sort.Derived {
		return s.TieBreak + " ASC"
	}

	col, ok := s.Columns[sort.Field]
	dir := sort.Direction
	if !ok {
		col, dir = s.Columns[s.Default], Desc
	}

	if col == s.TieBreak {
		return col + " " + dir.SQL()
	}
	return col + " " + dir.SQL() + ", " + s.TieBreak + " " + dir.SQL()
}

// SortStable orders items in memory. cmp must describe ascending order.
func SortStable[T any](items []T, dir Direction, cmp func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if dir == Asc {
			return cmp(a, b)
		}
		return cmp(b, a)
	})
}
