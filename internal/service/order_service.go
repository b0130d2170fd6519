package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	outboxDomain "github.com/me1610247/API-ecommerce/pkg/outbox/domain"
	"github.com/me1610247/API-ecommerce/pkg/outbox/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// OrderService materializes a user's cart into the user's single order.
type OrderService interface {
	CreateOrder(ctx context.Context, userID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, userID int64) (*domain.Order, error)
}

type orderService struct {
	pool       *pgxpool.Pool
	logger     *zap.Logger
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	userRepo   repository.UserRepository
	outboxRepo worker.OutboxRepository
	tracer     trace.Tracer
}

func NewOrderService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	outboxRepo worker.OutboxRepository,
) OrderService {
	return &orderService{
		pool:       pool,
		logger:     logger,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		tracer:     otel.Tracer("order_service"),
	}
}

// CreateOrder snapshots the user's current cart into an order. The
// existence check below is a fast path only; under concurrent calls the
// unique constraint on orders.user_id decides the winner, so at most one
// order is ever created per user.
//
// Cart lines are deliberately left in place after materialization. Combined
// with the single-order invariant this means a user cannot order again
// until their order row is removed; callers relying on re-ordering must
// delete the order out of band.
func (s *orderService) CreateOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	_, err := s.orderRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, repository.ErrOrderExists
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, err
	}

	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := domain.MaterializeOrder(user, lines)

	span.SetAttributes(
		attribute.Int("items_count", len(order.Lines)),
		attribute.Int64("total_price", order.TotalPrice),
	)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		err := tx.Rollback(cleanupCtx)

		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			ctxlog.Warn(
				cleanupCtx,
				s.logger,
				"Error rolling back transaction",
				zap.Error(err),
			)
		}
	}()

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		if errors.Is(err, repository.ErrOrderExists) {
			return nil, err
		}

		ctxlog.Error(
			ctx,
			s.logger,
			"Failed to create order",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)

		return nil, err
	}

	event := domain.OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Email:      user.Email,
		TotalPrice: order.TotalPrice,
		Items:      order.Lines,
		CreatedAt:  order.CreatedAt,
	}

	eventEnvelope := map[string]any{
		"event":   "OrderCreated",
		"payload": event,
	}

	payloadBytes, err := json.Marshal(eventEnvelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	outboxEvent := &outboxDomain.OutboxEvent{
		AggregateType: "Order",
		AggregateID:   fmt.Sprintf("%d", order.ID),
		EventType:     "OrderCreated",
		Payload:       payloadBytes,
		Topic:         "order_events",
	}

	if err := s.outboxRepo.SaveOutboxEvent(ctx, tx, outboxEvent); err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Failed to save outbox event",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Failed to commit transaction",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	ctxlog.Info(
		ctx,
		s.logger,
		"Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("total_price", order.TotalPrice),
	)

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
	)

	return s.orderRepo.GetByUserID(ctx, userID)
}
