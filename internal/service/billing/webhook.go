package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// HandleWebhook verifies a payment provider event and mirrors the
// subscription state it carries. Events that do not affect subscription
// state are acknowledged without writes. Events for customers we cannot
// map to a local account are logged and dropped so the provider does
// not retry them forever.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("billing.HandleWebhook parse: %w", err)
	}

	if event.SubscriptionID == "" {
		s.log.DebugContext(ctx, "ignoring webhook event", slog.String("type", event.Type))
		return nil
	}

	userID := event.UserID
	if userID == uuid.Nil {
		existing, err := s.subscriptions.GetByCustomerID(ctx, event.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "webhook for unknown customer dropped",
					slog.String("type", event.Type),
					slog.String("customer_id", event.CustomerID))
				return nil
			}
			return fmt.Errorf("billing.HandleWebhook resolve customer: %w", err)
		}
		userID = existing.UserID
	}

	now := s.clock()
	sub := &domain.Subscription{
		UserID:            userID,
		CustomerID:        event.CustomerID,
		SubscriptionID:    event.SubscriptionID,
		Status:            event.Status,
		CurrentPeriodEnd:  event.CurrentPeriodEnd,
		CancelAtPeriodEnd: event.CancelAtPeriodEnd,
		UpdatedAt:         now,
	}
	if _, err := s.subscriptions.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("billing.HandleWebhook upsert subscription: %w", err)
	}

	s.log.InfoContext(ctx, "subscription state mirrored",
		slog.String("type", event.Type),
		slog.String("user_id", userID.String()),
		slog.String("status", event.Status.String()))
	return nil
}
