package service

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrInvalidToken    = errors.New("invalid token")
)
