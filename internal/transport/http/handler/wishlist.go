package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"github.com/me1610247/API-ecommerce/pkg/utils"
	"go.uber.org/zap"
)

type WishlistHandler struct {
	service  service.WishlistService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewWishlistHandler(service service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type AddWishlistItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	input := new(AddWishlistItemInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.FormatValidationError(err),
		})
	}

	item, err := h.service.Add(ctx, userId, input.ProductID)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"add to wishlist failed",
			zap.Int64("user_id", userId),
			zap.Int64("product_id", input.ProductID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	if err := h.service.Remove(ctx, userId, itemID); err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"remove from wishlist failed",
			zap.Int64("user_id", userId),
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	items, err := h.service.List(ctx, userId)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}
