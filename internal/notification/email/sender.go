package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/pkg/config"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Sender interface {
	SendOrderConfirmation(ctx context.Context, event domain.OrderCreatedEvent) error
	SendWelcomeEmail(ctx context.Context, to string) error
}

type smtpSender struct {
	from     string
	password string
	host     string
	port     string
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewSMTPSender(cfg config.SMTP, logger *zap.Logger) Sender {
	return &smtpSender{
		from:     cfg.User,
		password: cfg.Password,
		host:     cfg.Host,
		port:     cfg.Port,
		logger:   logger,
		tracer:   otel.Tracer("notification/email"),
	}
}

func orderItemsHTML(lines []domain.OrderLine) string {
	var items strings.Builder
	for _, line := range lines {
		items.WriteString(fmt.Sprintf(
			"<li>%s x%d &mdash; %.2f</li>",
			line.Name,
			line.Quantity,
			float64(line.Price)/100,
		))
	}
	return items.String()
}

func (s *smtpSender) SendOrderConfirmation(ctx context.Context, event domain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "smtp.SendOrderConfirmation")
	defer span.End()

	span.SetAttributes(
		attribute.String("to.email", event.Email),
		attribute.Int64("order.id", event.OrderID),
	)

	subject := fmt.Sprintf("Subject: Your order #%d is confirmed.\n", event.OrderID)
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := fmt.Sprintf(`
		<h1>Thanks for your order! 🎉</h1>
		<p>We received your order #%d:</p>
		<ul>%s</ul>
		<p>Total: %.2f</p>
	`, event.OrderID, orderItemsHTML(event.Items), float64(event.TotalPrice)/100)

	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	ctxlog.Info(
		ctx,
		s.logger,
		"Sending order confirmation email",
		zap.String("to", event.Email),
		zap.Int64("order_id", event.OrderID),
	)

	if err := smtp.SendMail(addr, auth, s.from, []string{event.Email}, msg); err != nil {
		span.RecordError(err)
		ctxlog.Error(
			ctx,
			s.logger,
			"Error sending order confirmation email",
			zap.String("to", event.Email),
			zap.Error(err),
		)

		return fmt.Errorf("failed to send mail: %v", err)
	}

	ctxlog.Info(ctx, s.logger, "Order confirmation email sent successfully")
	return nil
}

func (s *smtpSender) SendWelcomeEmail(ctx context.Context, to string) error {
	ctx, span := s.tracer.Start(ctx, "smtp.SendWelcomeEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("to.email", to),
	)

	subject := "Subject: Welcome to our store!\n"
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := `
		<h1>Welcome! 🚀</h1>
		<p>Your account is ready. Happy shopping!</p>
	`

	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	ctxlog.Info(
		ctx,
		s.logger,
		"Sending welcome email",
		zap.String("to", to),
	)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Error sending welcome email",
			zap.String("to", to),
			zap.Error(err),
		)

		return fmt.Errorf("failed to send mail: %v", err)
	}

	ctxlog.Info(
		ctx,
		s.logger,
		"Sent welcome email successfully",
		zap.String("to", to),
	)

	return nil
}
