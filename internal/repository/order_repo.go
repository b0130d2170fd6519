package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Order, error)
}

type orderRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("order_repository"),
	}
}

// Create inserts the order row with the cart snapshot serialized as JSON.
// The unique constraint on orders.user_id is the backstop for the
// one-order-per-user invariant: a concurrent insert for the same user
// surfaces here as ErrOrderExists.
func (r *orderRepo) Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", order.UserID),
		attribute.Int("items_count", len(order.Lines)),
	)

	cartItems, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("error marshaling cart items: %w", err)
	}

	query := `
		INSERT INTO orders (user_id, cart_items, total_price, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := tx.QueryRow(
		ctx,
		query,
		order.UserID,
		cartItems,
		order.TotalPrice,
		order.Address,
		order.Phone,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			ctxlog.Warn(
				ctx,
				r.logger,
				"Order already exists for user",
				zap.Int64("user_id", order.UserID),
			)

			return ErrOrderExists
		}

		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to insert order",
			zap.Int64("user_id", order.UserID),
			zap.Error(err),
		)

		return fmt.Errorf("error creating order: %w", err)
	}

	return nil
}

func (r *orderRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetByUserID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	query := `
		SELECT id, user_id, cart_items, total_price, address, phone, created_at
		FROM orders
		WHERE user_id = $1
	`

	var (
		order     domain.Order
		cartItems []byte
	)
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&order.ID,
		&order.UserID,
		&cartItems,
		&order.TotalPrice,
		&order.Address,
		&order.Phone,
		&order.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to query order",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error getting order: %w", err)
	}

	if err := json.Unmarshal(cartItems, &order.Lines); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("error unmarshaling cart items: %w", err)
	}

	return &order, nil
}
