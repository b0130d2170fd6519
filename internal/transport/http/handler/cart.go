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

type CartHandler struct {
	service  service.CartService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCartHandler(service service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type AddCartLineInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gte=1"`
}

type UpdateCartLineInput struct {
	Quantity int32 `json:"quantity" validate:"required,gte=1"`
}

func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	input := new(AddCartLineInput)
	if err := c.BodyParser(input); err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"body parsing failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.FormatValidationError(err),
		})
	}

	line, err := h.service.AddLine(ctx, userId, input.ProductID, input.Quantity)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"add cart line failed",
			zap.Int64("user_id", userId),
			zap.Int64("product_id", input.ProductID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"cart line added",
		zap.Int64("user_id", userId),
		zap.Int64("line_id", line.ID),
	)

	return c.Status(fiber.StatusCreated).JSON(line)
}

func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	lineID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	input := new(UpdateCartLineInput)
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

	line, err := h.service.UpdateLine(ctx, userId, lineID, input.Quantity)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"update cart line failed",
			zap.Int64("user_id", userId),
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(line)
}

func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	lineID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	if err := h.service.RemoveLine(ctx, userId, lineID); err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"remove cart line failed",
			zap.Int64("user_id", userId),
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	lines, err := h.service.ListLines(ctx, userId)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"list cart failed",
			zap.Int64("user_id", userId),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	var total int64
	for _, line := range lines {
		total += line.Price
	}

	return c.JSON(fiber.Map{
		"items": lines,
		"total": total,
	})
}
