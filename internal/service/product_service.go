package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, limit, offset int64, search string, categoryID int64) ([]domain.Product, int64, error)
	Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *productService) Create(ctx context.Context, product *domain.Product) (int64, error) {
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			ctxlog.Warn(
				ctx,
				s.logger,
				"Create product failed: category not found",
				zap.Int64("category_id", product.CategoryID),
			)

			return 0, err
		}

		return 0, fmt.Errorf("error checking category: %w", err)
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("error creating product: %w", err)
	}

	return id, nil
}

func (s *productService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	res, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Warn("product not found", zap.Int64("product_id", id))
			return nil, err
		}

		s.logger.Error("error getting product", zap.Error(err))
		return nil, fmt.Errorf("error getting product by id: %w", err)
	}

	return res, nil
}

func (s *productService) List(ctx context.Context, limit, offset int64, search string, categoryID int64) ([]domain.Product, int64, error) {
	list, total, err := s.productRepo.List(ctx, limit, offset, search, categoryID)
	if err != nil {
		s.logger.Error("list error", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing products: %w", err)
	}

	return list, total, nil
}

func (s *productService) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, id, input); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	err := s.productRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Warn("product not found", zap.Int64("product_id", id))
			return err
		}

		s.logger.Error("error deleting product", zap.Error(err))
		return err
	}

	return nil
}
