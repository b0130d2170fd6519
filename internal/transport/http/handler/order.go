package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service service.OrderService
	logger  *zap.Logger
}

func NewOrderHandler(service service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		ctxlog.Info(ctx, h.logger, "user_id get failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	order, err := h.service.CreateOrder(ctx, userId)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"create order failed",
			zap.Int64("user_id", userId),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"order created",
		zap.Int64("user_id", userId),
		zap.Int64("order_id", order.ID),
	)

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	order, err := h.service.GetOrder(ctx, userId)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(order)
}
