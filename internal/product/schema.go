package product

import "storefront-be/internal/query"

// Filters lists the product filters. Listing defaults to active products.
var Filters = query.FilterSchema{
	Status: &query.StatusRule{Key: "status", Column: "p.status", Default: StatusActive},
	Equal: []query.EqualRule{
		{Key: "type", Column: "p.type"},
	},
	Range: []query.RangeRule{
		{MinKey: "minPrice", MaxKey: "maxPrice", Column: "p.price"},
	},
	AnyOf: []query.AnyOfRule{
		{Key: "category", Column: "p.category"},
	},
}

var Sorts = query.SortSchema{
	Allowed: []string{"name", "price", "status", "type", "createdAt", "updatedAt"},
	Columns: map[string]string{
		"name":      "p.name",
		"price":     "p.price",
		"status":    "p.status",
		"type":      "p.type",
		"createdAt": "p.created_at",
		"updatedAt": "p.updated_at",
	},
	Default:  "createdAt",
	TieBreak: "p.id",
}
