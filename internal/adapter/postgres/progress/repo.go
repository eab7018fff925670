// Package progress implements the UserWordProgress repository using PostgreSQL.
//
// The table carries UNIQUE(user_id, word_id); concurrent lookup-or-create
// races therefore surface as domain.ErrAlreadyExists instead of silently
// producing duplicate ledger rows.
package progress

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

// Repo provides per-user word mastery persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const progressColumns = `id, user_id, word_id, correct_count, correct_dates, incorrect_count, registered_at`

const getByUserAndWordSQL = `
SELECT ` + progressColumns + `
FROM user_word_progress
WHERE user_id = $1 AND word_id = $2`

const listByUserSQL = `
SELECT ` + progressColumns + `
FROM user_word_progress
WHERE user_id = $1
ORDER BY registered_at ASC`

const createSQL = `
INSERT INTO user_word_progress (id, user_id, word_id, correct_count, correct_dates, incorrect_count, registered_at)
VALUES ($1, $2, $3, 0, '{}', 0, $4)
RETURNING ` + progressColumns

const markCorrectSQL = `
UPDATE user_word_progress
SET correct_count = correct_count + 1,
    correct_dates = array_append(correct_dates, $3::date)
WHERE user_id = $1 AND word_id = $2
RETURNING ` + progressColumns

const markIncorrectSQL = `
UPDATE user_word_progress
SET correct_count = 0,
    incorrect_count = incorrect_count + 1
WHERE user_id = $1 AND word_id = $2
RETURNING ` + progressColumns

const countByUserSQL = `SELECT count(*) FROM user_word_progress WHERE user_id = $1`

const deleteByUserSQL = `DELETE FROM user_word_progress WHERE user_id = $1`

// GetByUserAndWord returns the ledger row for one (user, word) pair.
// Returns domain.ErrNotFound when the user has not registered the word.
func (r *Repo) GetByUserAndWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByUserAndWordSQL, userID, wordID)
	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_word_progress", wordID)
	}
	return p, nil
}

// ListByUser returns the user's entire ledger, oldest registration first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserWordProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list user_word_progress: %w", err)
	}
	defer rows.Close()

	var result []*domain.UserWordProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user_word_progress: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user_word_progress: %w", err)
	}
	if result == nil {
		result = []*domain.UserWordProgress{}
	}
	return result, nil
}

// Create inserts a fresh ledger row with zeroed counters.
// Returns domain.ErrAlreadyExists when a row for (userID, wordID) exists,
// which is how a concurrent duplicate registration is detected.
func (r *Repo) Create(ctx context.Context, userID, wordID uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, uuid.New(), userID, wordID, registeredAt)
	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_word_progress", wordID)
	}
	return p, nil
}

// MarkCorrect increments the streak by one and appends the answer date to
// the append-only history.
func (r *Repo) MarkCorrect(ctx context.Context, userID, wordID uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, markCorrectSQL, userID, wordID, answeredOn)
	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_word_progress", wordID)
	}
	return p, nil
}

// MarkIncorrect resets the streak to zero and bumps the incorrect counter.
// The correct-date history is left untouched.
func (r *Repo) MarkIncorrect(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, markIncorrectSQL, userID, wordID)
	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_word_progress", wordID)
	}
	return p, nil
}

// CountByUser returns the number of registered words for the user.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user_word_progress: %w", err)
	}
	return count, nil
}

// DeleteByUser removes the user's whole ledger. Used on account erasure.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByUserSQL, userID); err != nil {
		return fmt.Errorf("delete user_word_progress: %w", err)
	}
	return nil
}

func scanProgress(row pgx.Row) (*domain.UserWordProgress, error) {
	var p domain.UserWordProgress
	if err := row.Scan(
		&p.ID, &p.UserID, &p.WordID, &p.CorrectCount,
		&p.CorrectDates, &p.IncorrectCount, &p.RegisteredAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
