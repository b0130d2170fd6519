package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"github.com/me1610247/API-ecommerce/pkg/utils"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCategoryHandler(service service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(CreateCategoryInput)
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

	category, err := h.service.Create(ctx, input.Name)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"create category failed",
			zap.String("name", input.Name),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
	})
}
