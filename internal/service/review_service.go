package service

import (
	"context"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, userID, productID int64, rating int32, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	Delete(ctx context.Context, userID, reviewID int64) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *reviewService) Create(ctx context.Context, userID, productID int64, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Create review failed on product lookup",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, err
	}

	review := &domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *reviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	return s.reviewRepo.Delete(ctx, userID, reviewID)
}
