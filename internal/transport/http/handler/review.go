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

type ReviewHandler struct {
	service  service.ReviewService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewReviewHandler(service service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateReviewInput struct {
	Rating  int32  `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	input := new(CreateReviewInput)
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

	review, err := h.service.Create(ctx, userId, productID, input.Rating, input.Comment)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"create review failed",
			zap.Int64("user_id", userId),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()

	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	reviews, err := h.service.ListByProduct(ctx, productID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
	})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	reviewID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	if err := h.service.Delete(ctx, userId, reviewID); err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"delete review failed",
			zap.Int64("user_id", userId),
			zap.Int64("review_id", reviewID),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
