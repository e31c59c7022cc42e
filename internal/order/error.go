package order

import "storefront-be/internal/apperr"

var (
	ErrOrderNotFound = apperr.NotFound("Order not found")
	ErrNoneFound     = apperr.NotFound("No orders found with the given ids")
)
