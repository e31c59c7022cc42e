package user

import (
	"cmp"
	"time"

	"storefront-be/internal/query"

	"github.com/shopspring/decimal"
)

func Summarize(orders []OrderTotal) OrderSummary {
	s := OrderSummary{TotalOrders: len(orders), TotalSpent: decimal.Zero}
	for _, o := range orders {
		s.TotalSpent = s.TotalSpent.Add(o.Total)
		if s.LastOrderDate == nil || o.CreatedAt.After(*s.LastOrderDate) {
			at := o.CreatedAt.UTC()
			s.LastOrderDate = &at
		}
	}
	return s
}

// derivedFilter holds the filters that need order statistics.
type derivedFilter struct {
	minSpent  *decimal.Decimal
	maxSpent  *decimal.Decimal
	hasOrders *bool
}

// parseDerivedFilter reads minSpent/maxSpent and the orders status. The
// status is the top-level status when present, else filter.hasOrders; it is
// returned as given for echoing.
func parseDerivedFilter(req query.ListRequest) (derivedFilter, any) {
	var f derivedFilter

	if v, ok := query.Float(req.Filter["minSpent"]); ok {
		d := decimal.NewFromFloat(v)
		f.minSpent = &d
	}
	if v, ok := query.Float(req.Filter["maxSpent"]); ok {
		d := decimal.NewFromFloat(v)
		f.maxSpent = &d
	}

	status := req.Status
	if status == nil {
		status = req.Filter["hasOrders"]
	}

	switch v := status.(type) {
	case string:
		switch v {
		case "with_orders":
			f.hasOrders = ptr(true)
		case "without_orders":
			f.hasOrders = ptr(false)
		default:
			if b, ok := query.Bool(v); ok {
				f.hasOrders = &b
			}
		}
	case bool:
		f.hasOrders = &v
	}

	return f, status
}

func ptr[T any](v T) *T { return &v }

func (f derivedFilter) active() bool {
	return f.minSpent != nil || f.maxSpent != nil || f.hasOrders != nil
}

func (f derivedFilter) keep(u *User) bool {
	spent := u.Summary.TotalSpent
	if f.minSpent != nil && spent.LessThan(*f.minSpent) {
		return false
	}
	if f.maxSpent != nil && spent.GreaterThan(*f.maxSpent) {
		return false
	}
	if f.hasOrders != nil && (u.Summary.TotalOrders > 0) != *f.hasOrders {
		return false
	}
	return true
}

func (f derivedFilter) apply(users []*User) []*User {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if f.keep(u) {
			out = append(out, u)
		}
	}
	return out
}

// compareBy orders users ascending by a derived field. Users without orders
// sort as the oldest last order.
func compareBy(field string) func(a, b *User) int {
	switch field {
	case "totalSpent":
		return func(a, b *User) int { return a.Summary.TotalSpent.Cmp(b.Summary.TotalSpent) }
	case "totalOrders":
		return func(a, b *User) int { return cmp.Compare(a.Summary.TotalOrders, b.Summary.TotalOrders) }
	default:
		return func(a, b *User) int { return lastOrder(a).Compare(lastOrder(b)) }
	}
}

func lastOrder(u *User) time.Time {
	if u.Summary.LastOrderDate == nil {
		return time.Time{}
	}
	return *u.Summary.LastOrderDate
}
