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
	"github.com/me1610247/API-ecommerce/internal/validator"
	"github.com/me1610247/API-ecommerce/pkg/ctxlog"
	outboxDomain "github.com/me1610247/API-ecommerce/pkg/outbox/domain"
	"github.com/me1610247/API-ecommerce/pkg/outbox/worker"
	"github.com/me1610247/API-ecommerce/pkg/token"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	GetUserInfo(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, input *domain.UpdateProfileInput) (*domain.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	outboxRepo worker.OutboxRepository
	pool       *pgxpool.Pool
	logger     *zap.Logger
	validator  validator.Validator
	tracer     trace.Tracer
}

func NewAuthService(
	userRepo repository.UserRepository,
	outboxRepo worker.OutboxRepository,
	pool *pgxpool.Pool,
	logger *zap.Logger,
	validator validator.Validator,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		pool:       pool,
		logger:     logger,
		validator:  validator,
		tracer:     otel.Tracer("auth_service"),
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	span.SetAttributes(
		attribute.String("email", email),
	)

	if err := s.validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Error hashing password",
			zap.Error(err),
		)

		return nil, fmt.Errorf("error hashing password: %w", err)
	}

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

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPass),
		Name:         name,
	}

	user, err = s.userRepo.Create(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	eventPayload := map[string]any{
		"event": "UserRegistered",
		"payload": domain.UserRegisteredEvent{
			UserID: user.ID,
			Email:  user.Email,
		},
	}

	payloadBytes, err := json.Marshal(eventPayload)
	if err != nil {
		return nil, fmt.Errorf("event payload marshal error: %w", err)
	}

	outboxEvent := &outboxDomain.OutboxEvent{
		AggregateType: "User",
		AggregateID:   fmt.Sprintf("%d", user.ID),
		EventType:     "UserRegistered",
		Payload:       payloadBytes,
		Topic:         "user_events",
	}

	if err := s.outboxRepo.SaveOutboxEvent(ctx, tx, outboxEvent); err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Error saving outbox event",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	ctxlog.Info(
		ctx,
		s.logger,
		"User registered",
		zap.Int64("user_id", user.ID),
	)

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrBadCredentials
		}

		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Login failed: password mismatch",
			zap.Int64("user_id", user.ID),
		)

		return "", "", ErrBadCredentials
	}

	accessToken, refreshToken, err := token.GenerateTokens(user.ID)
	if err != nil {
		ctxlog.Error(
			ctx,
			s.logger,
			"Error generating tokens",
			zap.Error(err),
		)

		return "", "", fmt.Errorf("error generating tokens: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	claims, err := token.ValidateToken(refreshToken, true)
	if err != nil {
		ctxlog.Warn(
			ctx,
			s.logger,
			"Refresh failed: invalid token",
			zap.Error(err),
		)

		return "", "", ErrInvalidToken
	}

	// The user may have been deleted since the token was issued.
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		return "", "", ErrInvalidToken
	}

	return token.GenerateTokens(claims.UserID)
}

func (s *authService) GetUserInfo(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.GetUserInfo")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", id),
	)

	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) UpdateProfile(ctx context.Context, id int64, input *domain.UpdateProfileInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.UpdateProfile")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", id),
	)

	if err := s.userRepo.UpdateProfile(ctx, id, input); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}
