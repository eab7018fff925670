// Package billing exposes subscription checkout and mirrors payment
// provider state from verified webhook events.
package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/adapter/stripe"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// checkoutProvider starts hosted checkout sessions and verifies webhooks.
type checkoutProvider interface {
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ParseWebhook(payload []byte, signature string) (*stripe.SubscriptionEvent, error)
}

type subscriptionRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error)
	Upsert(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Service implements billing operations.
type Service struct {
	log           *slog.Logger
	provider      checkoutProvider
	subscriptions subscriptionRepo
	users         userRepo

	now func() time.Time
}

// NewService creates a new billing service instance.
func NewService(logger *slog.Logger, provider checkoutProvider, subscriptions subscriptionRepo, users userRepo) *Service {
	return &Service{
		log:           logger.With("service", "billing"),
		provider:      provider,
		subscriptions: subscriptions,
		users:         users,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
