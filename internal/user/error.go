package user

import "storefront-be/internal/apperr"

var (
	ErrUserNotFound = apperr.NotFound("User not found")
	ErrNoneFound    = apperr.NotFound("No users found with the given ids")
)
