package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"github.com/me1610247/API-ecommerce/pkg/utils"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewProductHandler(service service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateProductInput struct {
	Name          string `json:"name" validate:"required,min=3,max=100"`
	Description   string `json:"description" validate:"max=1000"`
	Price         int64  `json:"price" validate:"required,gt=0"`
	StockQuantity int64  `json:"stock_quantity" validate:"gte=0"`
	CategoryID    int64  `json:"category_id" validate:"required,gt=0"`
	ImageUrl      string `json:"image_url" validate:"omitempty,url"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(CreateProductInput)
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

	product := &domain.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
		ImageUrl:      input.ImageUrl,
	}

	id, err := h.service.Create(ctx, product)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"create product failed",
			zap.String("name", input.Name),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"product created",
		zap.Int64("product_id", id),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	product, err := h.service.FindByID(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(product)
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	limit := int64(c.QueryInt("limit", 20))
	offset := int64(c.QueryInt("offset", 0))
	search := c.Query("search")
	categoryID := int64(c.QueryInt("category_id", 0))

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, total, err := h.service.List(ctx, limit, offset, search, categoryID)
	if err != nil {
		ctxlog.Warn(ctx, h.logger, "list products failed", zap.Error(err))

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"products": products,
		"total":    total,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	input := new(domain.UpdateProductInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	product, err := h.service.Update(ctx, id, input)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"update product failed",
			zap.Int64("product_id", id),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Id is invalid",
		})
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"product deleted",
		zap.Int64("product_id", id),
	)

	return c.JSON(fiber.Map{
		"success": true,
	})
}
