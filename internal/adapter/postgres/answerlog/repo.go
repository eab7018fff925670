// Package answerlog implements the append-only answer event repository.
package answerlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordnest/wordnest-backend/internal/adapter/postgres"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Repo persists raw answer events. Rows are never updated or deleted
// except on account erasure.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const logColumns = `id, user_id, word_id, is_correct, answered_at`

const createSQL = `
INSERT INTO answer_logs (id, user_id, word_id, is_correct, answered_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + logColumns

const listByUserSQL = `
SELECT ` + logColumns + `
FROM answer_logs
WHERE user_id = $1
ORDER BY answered_at DESC, id DESC
LIMIT $2 OFFSET $3`

const countByUserSinceSQL = `
SELECT
    count(*) FILTER (WHERE is_correct),
    count(*)
FROM answer_logs
WHERE user_id = $1 AND answered_at >= $2`

const deleteByUserSQL = `DELETE FROM answer_logs WHERE user_id = $1`

// Create appends one answer event.
func (r *Repo) Create(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.AnsweredAt.IsZero() {
		log.AnsweredAt = time.Now()
	}

	row := querier.QueryRow(ctx, createSQL,
		log.ID, log.UserID, log.WordID, log.IsCorrect, log.AnsweredAt,
	)
	created, err := scanLog(row)
	if err != nil {
		return nil, postgres.MapError(err, "answer_log", log.ID)
	}
	return created, nil
}

// ListByUser returns the user's answer history, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.AnswerLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list answer_logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.AnswerLog{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan answer_log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer_logs: %w", err)
	}
	return logs, nil
}

// CountByUserSince returns (correct, total) answer counts since the
// given instant. Used for dashboard accuracy aggregates.
func (r *Repo) CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (correct, total int, err error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if err := querier.QueryRow(ctx, countByUserSinceSQL, userID, since).Scan(&correct, &total); err != nil {
		return 0, 0, fmt.Errorf("count answer_logs: %w", err)
	}
	return correct, total, nil
}

// DeleteByUser removes the user's answer history. Used on account erasure.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByUserSQL, userID); err != nil {
		return fmt.Errorf("delete answer_logs: %w", err)
	}
	return nil
}

func scanLog(row pgx.Row) (*domain.AnswerLog, error) {
	var log domain.AnswerLog
	if err := row.Scan(&log.ID, &log.UserID, &log.WordID, &log.IsCorrect, &log.AnsweredAt); err != nil {
		return nil, err
	}
	return &log, nil
}
