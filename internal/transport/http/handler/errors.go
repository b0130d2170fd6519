package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/internal/validator"
)

// StatusFromError maps service and repository errors to HTTP status
// codes. Anything unrecognized is a 500.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrCartLineNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrWishlistItemNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrCategoryExists),
		errors.Is(err, repository.ErrCartLineExists),
		errors.Is(err, repository.ErrOrderExists),
		errors.Is(err, repository.ErrWishlistItemExists):
		return fiber.StatusConflict

	case errors.Is(err, service.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity

	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, validator.ErrPasswordTooShort),
		errors.Is(err, validator.ErrPasswordTooWeak):
		return fiber.StatusBadRequest

	case errors.Is(err, service.ErrBadCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return fiber.StatusUnauthorized

	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(StatusFromError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
