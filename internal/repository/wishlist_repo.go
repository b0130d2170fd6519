package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *domain.WishlistItem) error
	Remove(ctx context.Context, userID, itemID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.WishlistItem, error)
}

type wishlistRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewWishlistRepository(pool *pgxpool.Pool, logger *zap.Logger) WishlistRepository {
	return &wishlistRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("wishlist_repository"),
	}
}

func (r *wishlistRepo) Add(ctx context.Context, item *domain.WishlistItem) error {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.Add")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", item.UserID),
		attribute.Int64("product_id", item.ProductID),
	)

	query := `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, item.UserID, item.ProductID).
		Scan(&item.ID, &item.CreatedAt); err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			return ErrWishlistItemExists
		}

		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error adding wishlist item",
			zap.Int64("user_id", item.UserID),
			zap.Error(err),
		)

		return fmt.Errorf("error adding wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, itemID int64) error {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.Remove")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("item_id", itemID),
	)

	query := `
		DELETE FROM wishlist_items
		WHERE id = $1 AND user_id = $2
	`

	commandTag, err := r.pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error removing wishlist item",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return fmt.Errorf("error removing wishlist item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.ListByUser")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	query := `
		SELECT wi.id, wi.user_id, wi.product_id, p.name, p.price, wi.created_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.id ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Error listing wishlist",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error listing wishlist: %w", err)
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.ProductName,
			&item.Price,
			&item.CreatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning wishlist item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
