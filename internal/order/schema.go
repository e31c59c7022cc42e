package order

import "storefront-be/internal/query"

// Filters is the filter allow-list of the order listing. The payment status
// may arrive as filter.paymentStatus or as the top-level status.
var Filters = query.FilterSchema{
	Status: &query.StatusRule{Key: "paymentStatus", Column: "o.payment_status"},
	Equal: []query.EqualRule{
		{Key: "orderStatus", Column: "o.order_status"},
	},
	Range: []query.RangeRule{
		{MinKey: "minTotal", MaxKey: "maxTotal", Column: "o.total"},
	},
	Search: &query.SearchRule{
		Key:     "customerName",
		Columns: []string{"o.customer_first_name", "o.customer_last_name"},
	},
}

var Sorts = query.SortSchema{
	Allowed: []string{
		"orderId", "customer", "date", "total",
		"orderStatus", "paymentStatus", "deliveryAddress", "createdAt",
	},
	Aliases: map[string]string{
		"orderId":         "id",
		"customer":        "customerFirstName",
		"date":            "createdAt",
		"deliveryAddress": "city",
		"address":         "city",
	},
	Columns: map[string]string{
		"id":                "o.id",
		"customerFirstName": "o.customer_first_name",
		"createdAt":         "o.created_at",
		"total":             "o.total",
		"orderStatus":       "o.order_status",
		"paymentStatus":     "o.payment_status",
		"city":              "o.city",
	},
	Default:  "createdAt",
	TieBreak: "o.id",
}
