package query

// GroupCount is one row of a GROUP BY status query.
type GroupCount struct {
	Value string
	Count int
}

// Tally holds per-value counts of a grouped column.
type Tally map[string]int

func NewTally(groups []GroupCount) Tally {
	t := make(Tally, len(groups))
	for _, g := range groups {
		t[g.Value] += g.Count
	}
	return t
}

func (t Tally) Of(value string) int { return t[value] }

func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}
