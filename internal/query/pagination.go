package query

import (
	"encoding/json"
	"math"
)

// Page is a 1-based page window. Limit zero means unbounded.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Bounded() bool { return p.Limit > 0 }

func (p Page) Offset() int {
	if !p.Bounded() || p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// Limit marshals as the page size, or "all" for an unbounded page.
type Limit int

func (l Limit) MarshalJSON() ([]byte, error) {
	if l <= 0 {
		return []byte(`"all"`), nil
	}
	return json.Marshal(int(l))
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       Limit `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewPagination(p Page, matched int) Pagination {
	if !p.Bounded() {
		return Pagination{CurrentPage: 1, TotalPages: 1}
	}

	totalPages := int(math.Ceil(float64(matched) / float64(p.Limit)))

	return Pagination{
		CurrentPage: p.Number,
		TotalPages:  totalPages,
		Limit:       Limit(p.Limit),
		HasNextPage: p.Number < totalPages,
		HasPrevPage: p.Number > 1,
	}
}

// Paginate slices an in-memory result set to the page window.
func Paginate[T any](items []T, p Page) []T {
	if !p.Bounded() {
		return items
	}

	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := min(start+p.Limit, len(items))
	return items[start:end]
}
