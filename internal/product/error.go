package product

import "storefront-be/internal/apperr"

var (
	ErrProductNotFound = apperr.NotFound("Product not found")
	ErrNoneFound       = apperr.NotFound("No products found with the given ids")
)
