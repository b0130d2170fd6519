package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/notification/email"
	"github.com/me1610247/API-ecommerce/pkg/outbox/dedup"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Service struct {
	emailSender email.Sender
	logger      *zap.Logger
	pool        *pgxpool.Pool
	tracer      trace.Tracer
}

func NewService(emailSender email.Sender, logger *zap.Logger, pool *pgxpool.Pool) *Service {
	return &Service{
		emailSender: emailSender,
		logger:      logger,
		pool:        pool,
		tracer:      otel.Tracer("notification-service"),
	}
}

func (s *Service) HandleOrderCreated(ctx context.Context, eventID int64, event domain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "NotificationService.HandleOrderCreated")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("event_id", eventID),
		attribute.Int64("order.id", event.OrderID),
	)

	return dedup.ProcessWithDeduplication(ctx, s.pool, s.logger, eventID, func() error {
		return s.emailSender.SendOrderConfirmation(ctx, event)
	})
}

func (s *Service) HandleUserRegistered(ctx context.Context, eventID int64, event domain.UserRegisteredEvent) error {
	ctx, span := s.tracer.Start(ctx, "NotificationService.HandleUserRegistered")
	defer span.End()

	span.SetAttributes(attribute.Int64("event_id", eventID))

	return dedup.ProcessWithDeduplication(ctx, s.pool, s.logger, eventID, func() error {
		return s.emailSender.SendWelcomeEmail(ctx, event.Email)
	})
}
