package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/service"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"github.com/me1610247/API-ecommerce/pkg/utils"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service  service.AuthService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthHandler(service service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"failed to parse body in register",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.FormatValidationError(err),
		})
	}

	user, err := h.service.Register(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"register failed",
			zap.String("email", input.Email),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"register succeeded",
		zap.Int64("user_id", user.ID),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.FormatValidationError(err),
		})
	}

	accessToken, refreshToken, err := h.service.Login(ctx, input.Email, input.Password)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"login failed",
			zap.String("email", input.Email),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(RefreshInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": utils.FormatValidationError(err),
		})
	}

	accessToken, refreshToken, err := h.service.Refresh(ctx, input.RefreshToken)
	if err != nil {
		ctxlog.Warn(ctx, h.logger, "refresh failed", zap.Error(err))

		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		ctxlog.Info(ctx, h.logger, "user_id get failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	user, err := h.service.GetUserInfo(ctx, userId)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"get me failed",
			zap.Int64("user_id", userId),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	return c.JSON(user)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userId, ok := c.Locals("userId").(int64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "userId parsing error"})
	}

	input := new(domain.UpdateProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	user, err := h.service.UpdateProfile(ctx, userId, input)
	if err != nil {
		ctxlog.Warn(
			ctx,
			h.logger,
			"update profile failed",
			zap.Int64("user_id", userId),
			zap.Error(err),
		)

		return errorResponse(c, err)
	}

	ctxlog.Info(
		ctx,
		h.logger,
		"profile updated",
		zap.Int64("user_id", userId),
	)

	return c.JSON(user)
}
