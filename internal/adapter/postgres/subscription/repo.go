// Package subscription implements the billing state repository.
package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordnest/wordnest-backend/internal/adapter/postgres"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Repo persists the locally mirrored subscription state. There is at
// most one row per user; webhook handlers upsert into it.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subscription repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const subColumns = `id, user_id, customer_id, subscription_id, status, current_period_end, cancel_at_period_end, created_at, updated_at`

const getByUserSQL = `
SELECT ` + subColumns + `
FROM subscriptions
WHERE user_id = $1`

const getByCustomerSQL = `
SELECT ` + subColumns + `
FROM subscriptions
WHERE customer_id = $1`

const upsertSQL = `
INSERT INTO subscriptions (id, user_id, customer_id, subscription_id, status, current_period_end, cancel_at_period_end, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (user_id) DO UPDATE SET
    customer_id          = EXCLUDED.customer_id,
    subscription_id      = EXCLUDED.subscription_id,
    status               = EXCLUDED.status,
    current_period_end   = EXCLUDED.current_period_end,
    cancel_at_period_end = EXCLUDED.cancel_at_period_end,
    updated_at           = EXCLUDED.updated_at
RETURNING ` + subColumns

// GetByUserID returns the user's mirrored subscription state.
// Returns domain.ErrNotFound when the user never subscribed.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByUserSQL, userID)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, postgres.MapError(err, "subscription", userID)
	}
	return sub, nil
}

// GetByCustomerID resolves a payment-provider customer id back to the
// local subscription row. Webhook handlers use this when the event does
// not carry our user id.
func (r *Repo) GetByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByCustomerSQL, customerID)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, postgres.MapError(err, "subscription", uuid.Nil)
	}
	return sub, nil
}

// Upsert writes the subscription state, replacing any previous row for
// the same user.
func (r *Repo) Upsert(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now()

	row := querier.QueryRow(ctx, upsertSQL,
		sub.ID, sub.UserID, sub.CustomerID, sub.SubscriptionID,
		sub.Status, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd, now,
	)
	stored, err := scanSubscription(row)
	if err != nil {
		return nil, postgres.MapError(err, "subscription", sub.UserID)
	}
	return stored, nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var (
		sub    domain.Subscription
		status string
	)
	if err := row.Scan(
		&sub.ID, &sub.UserID, &sub.CustomerID, &sub.SubscriptionID,
		&status, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	sub.Status = domain.SubscriptionStatus(status)
	return &sub, nil
}
