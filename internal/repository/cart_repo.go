package repository

import (
	"context"
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

type CartRepository interface {
	CreateLine(ctx context.Context, line *domain.CartLine) error
	GetLine(ctx context.Context, userID, lineID int64) (*domain.CartLine, error)
	SetLineQuantity(ctx context.Context, userID, lineID int64, quantity int32, price int64) error
	DeleteLine(ctx context.Context, userID, lineID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
}

type cartRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewCartRepository(pool *pgxpool.Pool, logger *zap.Logger) CartRepository {
	return &cartRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("cart_repository"),
	}
}

func (r *cartRepo) CreateLine(ctx context.Context, line *domain.CartLine) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.CreateLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", line.UserID),
		attribute.Int64("product_id", line.ProductID),
		attribute.Int("quantity", int(line.Quantity)),
	)

	query := `
		INSERT INTO cart_lines (user_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		line.UserID,
		line.ProductID,
		line.Quantity,
		line.Price,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			ctxlog.Warn(
				ctx,
				r.logger,
				"Cart line already exists",
				zap.Int64("user_id", line.UserID),
				zap.Int64("product_id", line.ProductID),
			)

			return ErrCartLineExists
		}

		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to insert cart line",
			zap.Int64("user_id", line.UserID),
			zap.Error(err),
		)

		return fmt.Errorf("error creating cart line: %w", err)
	}

	return nil
}

func (r *cartRepo) GetLine(ctx context.Context, userID, lineID int64) (*domain.CartLine, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.GetLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("line_id", lineID),
	)

	query := `
		SELECT cl.id, cl.user_id, cl.product_id, p.name, cl.quantity, cl.price, cl.created_at
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.id = $1 AND cl.user_id = $2
	`

	var line domain.CartLine
	if err := r.pool.QueryRow(ctx, query, lineID, userID).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.ProductName,
		&line.Quantity,
		&line.Price,
		&line.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartLineNotFound
		}

		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to query cart line",
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error getting cart line: %w", err)
	}

	return &line, nil
}

func (r *cartRepo) SetLineQuantity(ctx context.Context, userID, lineID int64, quantity int32, price int64) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.SetLineQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("line_id", lineID),
		attribute.Int("quantity", int(quantity)),
	)

	query := `
		UPDATE cart_lines
		SET quantity = $1, price = $2
		WHERE id = $3 AND user_id = $4
	`

	commandTag, err := r.pool.Exec(ctx, query, quantity, price, lineID, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to update cart line",
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)

		return fmt.Errorf("error updating cart line: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCartLineNotFound
	}

	return nil
}

func (r *cartRepo) DeleteLine(ctx context.Context, userID, lineID int64) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.DeleteLine")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int64("line_id", lineID),
	)

	query := `
		DELETE FROM cart_lines
		WHERE id = $1 AND user_id = $2
	`

	commandTag, err := r.pool.Exec(ctx, query, lineID, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to delete cart line",
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)

		return fmt.Errorf("error deleting cart line: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCartLineNotFound
	}

	return nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.ListByUser")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	// Insertion order: serial ids grow monotonically.
	query := `
		SELECT cl.id, cl.user_id, cl.product_id, p.name, cl.quantity, cl.price, cl.created_at
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.user_id = $1
		ORDER BY cl.id ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		span.RecordError(err)

		ctxlog.Error(
			ctx,
			r.logger,
			"Failed to query cart lines",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("error listing cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.ProductName,
			&line.Quantity,
			&line.Price,
			&line.CreatedAt,
		); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	span.SetAttributes(
		attribute.Int("result_count", len(lines)),
	)

	return lines, nil
}
