package service

import (
	"context"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.uber.org/zap"
)

type WishlistService interface {
	Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error)
	Remove(ctx context.Context, userID, itemID int64) error
	List(ctx context.Context, userID int64) ([]domain.WishlistItem, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       *zap.Logger
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (s *wishlistService) Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Add to wishlist failed on product lookup",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, err
	}

	item := &domain.WishlistItem{
		UserID:      userID,
		ProductID:   productID,
		ProductName: product.Name,
		Price:       product.Price,
	}

	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *wishlistService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.wishlistRepo.Remove(ctx, userID, itemID)
}

func (s *wishlistService) List(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}
