package repository

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")

	ErrCartLineNotFound = errors.New("cart line not found")
	ErrCartLineExists   = errors.New("product already in cart")

	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists for user")

	ErrReviewNotFound = errors.New("review not found")

	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrWishlistItemExists   = errors.New("product already in wishlist")
)

// uniqueViolation is the Postgres error code for unique constraint
// violations; it is the storage-level backstop behind every
// application-level duplicate check.
const uniqueViolation = "23505"
