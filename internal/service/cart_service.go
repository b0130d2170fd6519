package service

import (
	"context"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CartService maintains the unique-per-product cart line set for each user.
// A line's price is snapshotted from the catalog at every write: AddLine
// prices against the product's unit price at add time, UpdateLine reprices
// against the product's current unit price, not the previous snapshot.
type CartService interface {
	AddLine(ctx context.Context, userID, productID int64, quantity int32) (*domain.CartLine, error)
	UpdateLine(ctx context.Context, userID, lineID int64, quantity int32) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, userID, lineID int64) error
	ListLines(ctx context.Context, userID int64) ([]domain.CartLine, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
	tracer      trace.Tracer
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
		tracer:      otel.Tracer("cart_service"),
	}
}

func (s *cartService) AddLine(ctx context.Context, userID, productID int64, quantity int32) (*domain.CartLine, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Add to cart failed on product lookup",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, err
	}

	line := &domain.CartLine{
		UserID:      userID,
		ProductID:   productID,
		ProductName: product.Name,
		Quantity:    quantity,
	}
	line.Reprice(product.Price)

	// A line for this (user, product) pair may already exist: the unique
	// constraint rejects the insert rather than merging quantities.
	if err := s.cartRepo.CreateLine(ctx, line); err != nil {
		return nil, err
	}

	ctxlog.Info(
		ctx,
		s.logger,
		"Cart line added",
		zap.Int64("user_id", userID),
		zap.Int64("line_id", line.ID),
	)

	return line, nil
}

func (s *cartService) UpdateLine(ctx context.Context, userID, lineID int64, quantity int32) (*domain.CartLine, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("line_id", lineID),
		attribute.Int("quantity", int(quantity)),
	)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line, err := s.cartRepo.GetLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Update cart line failed on product lookup",
			zap.Int64("product_id", line.ProductID),
			zap.Error(err),
		)

		return nil, err
	}

	line.Quantity = quantity
	line.Reprice(product.Price)

	if err := s.cartRepo.SetLineQuantity(ctx, userID, lineID, line.Quantity, line.Price); err != nil {
		return nil, err
	}

	return line, nil
}

func (s *cartService) RemoveLine(ctx context.Context, userID, lineID int64) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("line_id", lineID),
	)

	return s.cartRepo.DeleteLine(ctx, userID, lineID)
}

func (s *cartService) ListLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListLines")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	return s.cartRepo.ListByUser(ctx, userID)
}
