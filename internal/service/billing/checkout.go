package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// CreateCheckout starts a subscription checkout for the calling user and
// returns the hosted payment page URL.
func (s *Service) CreateCheckout(ctx context.Context) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("billing.CreateCheckout get user: %w", err)
	}

	url, err := s.provider.CreateCheckoutSession(ctx, userID, user.Email)
	if err != nil {
		return "", fmt.Errorf("billing.CreateCheckout create session: %w", err)
	}

	s.log.InfoContext(ctx, "checkout session created", slog.String("user_id", userID.String()))
	return url, nil
}
