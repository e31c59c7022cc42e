package query

type Strategy int

const (
	// NativeSort lets the store filter, order and window the rows.
	NativeSort Strategy = iota
	// ComputeThenSort fetches every matched row, computes derived values,
	// sorts in memory and only then windows the result.
	ComputeThenSort
)

func (s Strategy) String() string {
	if s == ComputeThenSort {
		return "compute_then_sort"
	}
	return "native_sort"
}

type Plan struct {
	Filters  Filters
	Sort     Sort
	Page     Page
	Strategy Strategy
}

func NewPlan(req ListRequest, filters FilterSchema, sorts SortSchema) Plan {
	sort := sorts.Resolve(req.SortBy, req.SortOrder)

	plan := Plan{
		Filters: filters.Normalize(req),
		Sort:    sort,
		Page:    req.Window(),
	}
	if sort.Derived {
		plan.Strategy = ComputeThenSort
	}
	return plan
}

type AppliedSort struct {
	SortBy    string    `json:"sortBy"`
	SortOrder Direction `json:"sortOrder"`
}

// Applied echoes the filter, sort and status a listing actually used.
type Applied struct {
	Filter map[string]any `json:"filter"`
	Sort   AppliedSort    `json:"sort"`
	Status any            `json:"status"`
}

func NewApplied(req ListRequest, sort Sort, status any) Applied {
	filter := req.Filter
	if filter == nil {
		filter = map[string]any{}
	}

	return Applied{
		Filter: filter,
		Sort:   AppliedSort{SortBy: sort.Field, SortOrder: sort.Direction},
		Status: status,
	}
}
