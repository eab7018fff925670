package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// StatusOutput describes the caller's current billing tier.
type StatusOutput struct {
	Premium           bool
	Status            domain.SubscriptionStatus
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
}

// Status reports whether the calling user has an active subscription.
// Users with no subscription record are on the free tier.
func (s *Service) Status(ctx context.Context) (*StatusOutput, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &StatusOutput{}, nil
		}
		return nil, fmt.Errorf("billing.Status get subscription: %w", err)
	}

	return &StatusOutput{
		Premium:           sub.IsActive(s.clock()),
		Status:            sub.Status,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}, nil
}
