package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrUserNotFound, fiber.StatusNotFound},
		{repository.ErrProductNotFound, fiber.StatusNotFound},
		{repository.ErrCartLineNotFound, fiber.StatusNotFound},
		{repository.ErrOrderNotFound, fiber.StatusNotFound},
		{repository.ErrEmailTaken, fiber.StatusConflict},
		{repository.ErrCartLineExists, fiber.StatusConflict},
		{repository.ErrOrderExists, fiber.StatusConflict},
		{repository.ErrWishlistItemExists, fiber.StatusConflict},
		{service.ErrEmptyCart, fiber.StatusUnprocessableEntity},
		{service.ErrInvalidQuantity, fiber.StatusBadRequest},
		{service.ErrInvalidRating, fiber.StatusBadRequest},
		{service.ErrBadCredentials, fiber.StatusUnauthorized},
		{service.ErrInvalidToken, fiber.StatusUnauthorized},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFromError(tc.err))
		})
	}
}

func TestStatusFromError_Wrapped(t *testing.T) {
	err := fmt.Errorf("creating order: %w", repository.ErrOrderExists)
	assert.Equal(t, fiber.StatusConflict, StatusFromError(err))
}
