package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	Delete(ctx context.Context, userID, reviewID int64) error
}

type reviewRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewReviewRepository(pool *pgxpool.Pool, logger *zap.Logger) ReviewRepository {
	return &reviewRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("review_repository"),
	}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	ctx, span := r.tracer.Start(ctx, "ReviewRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", review.UserID),
		attribute.Int64("product_id", review.ProductID),
		attribute.Int("rating", int(review.Rating)),
	)

	query := `
		INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt); err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error creating review",
			zap.Int64("product_id", review.ProductID),
			zap.Error(err),
		)

		return fmt.Errorf("error creating review: %w", err)
	}

	return nil
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	ctx, span := r.tracer.Start(ctx, "ReviewRepository.ListByProduct")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product_id", productID),
	)

	query := `
		SELECT id, user_id, product_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error listing reviews",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepo) Delete(ctx context.Context, userID, reviewID int64) error {
	ctx, span := r.tracer.Start(ctx, "ReviewRepository.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("review_id", reviewID),
	)

	query := `
		DELETE FROM reviews
		WHERE id = $1 AND user_id = $2
	`

	commandTag, err := r.pool.Exec(ctx, query, reviewID, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error deleting review",
			zap.Int64("review_id", reviewID),
			zap.Error(err),
		)

		return fmt.Errorf("error deleting review: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}
