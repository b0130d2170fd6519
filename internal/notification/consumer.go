package notification

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"github.com/me1610247/API-ecommerce/pkg/kafka"
	"go.uber.org/zap"
)

type Consumer struct {
	service *Service
	logger  *zap.Logger
}

func NewConsumer(service *Service, logger *zap.Logger) *Consumer {
	return &Consumer{
		service: service,
		logger:  logger,
	}
}

func (c *Consumer) Start(ctx context.Context, brokers []string) {
	consumerGroup := kafka.NewConsumerGroup(
		brokers,
		"notification-group",
		[]string{"order_events", "user_events"},
		c.processMessage,
		c.logger,
	)

	consumerGroup.Run(ctx)
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctxlog.Info(
		ctx,
		c.logger,
		"Processing message",
		zap.String("topic", msg.Topic),
	)

	type EventWrapper struct {
		Event   string          `json:"event"`
		EventID int64           `json:"event_id"`
		Payload json.RawMessage `json:"payload"`
	}

	var wrapper EventWrapper
	if err := json.Unmarshal(msg.Value, &wrapper); err != nil {
		ctxlog.Error(ctx, c.logger, "Error unmarshalling wrapper", zap.Error(err))
		return err
	}

	switch wrapper.Event {
	case "OrderCreated":
		var event domain.OrderCreatedEvent
		if err := json.Unmarshal(wrapper.Payload, &event); err != nil {
			ctxlog.Error(ctx, c.logger, "Error parsing order event", zap.Error(err))
			return nil
		}

		if err := c.service.HandleOrderCreated(ctx, wrapper.EventID, event); err != nil {
			ctxlog.Error(ctx, c.logger, "Error processing order event", zap.Error(err))
			return err
		}
	case "UserRegistered":
		var event domain.UserRegisteredEvent
		if err := json.Unmarshal(wrapper.Payload, &event); err != nil {
			ctxlog.Error(ctx, c.logger, "Error parsing register event", zap.Error(err))
			return nil
		}

		if err := c.service.HandleUserRegistered(ctx, wrapper.EventID, event); err != nil {
			ctxlog.Error(ctx, c.logger, "Error processing register event", zap.Error(err))
			return err
		}
	default:
		ctxlog.Info(ctx, c.logger, "Ignored event type", zap.String("event", wrapper.Event))
	}

	return nil
}
