// Package usage implements the quota usage event repository.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordnest/wordnest-backend/internal/adapter/postgres"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Repo persists metered usage events for quota enforcement.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new usage repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordSQL = `
INSERT INTO usage_events (id, user_id, kind, occurred_at)
VALUES ($1, $2, $3, $4)`

const countSinceSQL = `
SELECT count(*)
FROM usage_events
WHERE user_id = $1 AND kind = $2 AND occurred_at >= $3`

const deleteByUserSQL = `DELETE FROM usage_events WHERE user_id = $1`

// Record appends one usage event.
func (r *Repo) Record(ctx context.Context, event *domain.UsageEvent) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if _, err := querier.Exec(ctx, recordSQL, event.ID, event.UserID, event.Kind, event.OccurredAt); err != nil {
		return postgres.MapError(err, "usage_event", event.ID)
	}
	return nil
}

// CountSince returns how many events of the given kind the user has
// recorded at or after the given instant. The quota gate passes the
// start of the server-local day here.
func (r *Repo) CountSince(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSinceSQL, userID, kind, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count usage_events: %w", err)
	}
	return count, nil
}

// DeleteByUser removes the user's usage history. Used on account erasure.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByUserSQL, userID); err != nil {
		return fmt.Errorf("delete usage_events: %w", err)
	}
	return nil
}
