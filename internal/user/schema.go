package user

import "storefront-be/internal/query"

// Filters covers what the store can filter natively. Spend and order-count
// filters are applied after statistics are computed.
var Filters = query.FilterSchema{
	Search: &query.SearchRule{
		Key:     "name",
		Columns: []string{"u.first_name", "u.last_name"},
	},
}

var Sorts = query.SortSchema{
	Allowed: []string{"id", "name", "email", "createdAt", "totalSpent", "totalOrders", "lastOrder"},
	Aliases: map[string]string{"name": "firstName"},
	Columns: map[string]string{
		"id":        "u.id",
		"firstName": "u.first_name",
		"email":     "u.email",
		"createdAt": "u.created_at",
	},
	Derived:  []string{"totalSpent", "totalOrders", "lastOrder"},
	Default:  "createdAt",
	TieBreak: "u.id",
}
