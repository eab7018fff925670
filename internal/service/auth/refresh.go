package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordnest/wordnest-backend/internal/auth"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Refresh performs token rotation and returns a new access/refresh pair.
// An unknown, revoked, or expired token returns ErrUnauthorized; an
// unknown hash additionally logs a reuse warning, since rotation should
// have left exactly one live token per session.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := auth.HashToken(input.RefreshToken)

	token, err := s.users.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh token reuse attempted")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if token.IsRevoked() || token.IsExpired(s.clock()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	if err := s.users.RevokeRefreshToken(ctx, token.ID); err != nil {
		return nil, fmt.Errorf("auth.Refresh revoke token: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh issue tokens: %w", err)
	}
	return result, nil
}

// Logout revokes every live refresh token of the user.
func (s *Service) Logout(ctx context.Context, input RefreshInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	hash := auth.HashToken(input.RefreshToken)

	token, err := s.users.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Already gone; logout is idempotent.
			return nil
		}
		return fmt.Errorf("auth.Logout get token: %w", err)
	}

	if err := s.users.RevokeAllRefreshTokens(ctx, token.UserID); err != nil {
		return fmt.Errorf("auth.Logout revoke tokens: %w", err)
	}
	return nil
}
