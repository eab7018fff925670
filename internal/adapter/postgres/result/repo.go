// Package result implements the TestResult repository using PostgreSQL.
package result

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

// Repo persists graded quiz results and their per-question items.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new result repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const resultColumns = `id, user_id, correct_count, total_count, accuracy, predicted_score, weak_categories, created_at`

const itemColumns = `id, result_id, question, correct_answer, user_answer, is_correct, part_of_speech, created_at`

const createResultSQL = `
INSERT INTO test_results (id, user_id, correct_count, total_count, accuracy, predicted_score, weak_categories, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + resultColumns

const createItemSQL = `
INSERT INTO test_result_items (id, result_id, question, correct_answer, user_answer, is_correct, part_of_speech, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + itemColumns

const getLatestByUserSQL = `
SELECT ` + resultColumns + `
FROM test_results
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`

const listByUserSQL = `
SELECT ` + resultColumns + `
FROM test_results
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

const listItemsByResultSQL = `
SELECT ` + itemColumns + `
FROM test_result_items
WHERE result_id = $1
ORDER BY created_at ASC, id ASC`

const getByIDSQL = `
SELECT ` + resultColumns + `
FROM test_results
WHERE id = $1`

// CreateResult stores a graded result summary.
func (r *Repo) CreateResult(ctx context.Context, result *domain.TestResult) (*domain.TestResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	row := querier.QueryRow(ctx, createResultSQL,
		result.ID, result.UserID, result.CorrectCount, result.TotalCount,
		result.Accuracy, result.PredictedScore, categoriesToStrings(result.WeakCategories), result.CreatedAt,
	)
	created, err := scanResult(row)
	if err != nil {
		return nil, postgres.MapError(err, "test_result", result.ID)
	}
	return created, nil
}

// CreateItems stores the per-question rows belonging to one result.
// The rows are written in the order given so ListItemsByResult returns
// them in the original question order.
func (r *Repo) CreateItems(ctx context.Context, resultID uuid.UUID, items []*domain.TestResultItem) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	base := time.Now()
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ResultID = resultID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		}

		row := querier.QueryRow(ctx, createItemSQL,
			item.ID, item.ResultID, item.Question, item.CorrectAnswer,
			item.UserAnswer, item.IsCorrect, item.PartOfSpeech, item.CreatedAt,
		)
		if _, err := scanItem(row); err != nil {
			return postgres.MapError(err, "test_result_item", item.ID)
		}
	}
	return nil
}

// GetByID returns one result summary.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TestResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	result, err := scanResult(row)
	if err != nil {
		return nil, postgres.MapError(err, "test_result", id)
	}
	return result, nil
}

// GetLatestByUser returns the user's most recent result, used as the
// prior for score prediction. Returns domain.ErrNotFound when the user
// has no graded results yet.
func (r *Repo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.TestResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getLatestByUserSQL, userID)
	result, err := scanResult(row)
	if err != nil {
		return nil, postgres.MapError(err, "test_result", userID)
	}
	return result, nil
}

// ListByUser returns the user's result history, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.TestResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list test_results: %w", err)
	}
	defer rows.Close()

	results := []*domain.TestResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test_result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test_results: %w", err)
	}
	return results, nil
}

// ListItemsByResult returns the per-question rows for one result in
// original question order.
func (r *Repo) ListItemsByResult(ctx context.Context, resultID uuid.UUID) ([]*domain.TestResultItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listItemsByResultSQL, resultID)
	if err != nil {
		return nil, fmt.Errorf("list test_result_items: %w", err)
	}
	defer rows.Close()

	items := []*domain.TestResultItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test_result_item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test_result_items: %w", err)
	}
	return items, nil
}

func scanResult(row pgx.Row) (*domain.TestResult, error) {
	var (
		result     domain.TestResult
		categories []string
	)
	if err := row.Scan(
		&result.ID, &result.UserID, &result.CorrectCount, &result.TotalCount,
		&result.Accuracy, &result.PredictedScore, &categories, &result.CreatedAt,
	); err != nil {
		return nil, err
	}
	result.WeakCategories = stringsToCategories(categories)
	return &result, nil
}

func scanItem(row pgx.Row) (*domain.TestResultItem, error) {
	var item domain.TestResultItem
	if err := row.Scan(
		&item.ID, &item.ResultID, &item.Question, &item.CorrectAnswer,
		&item.UserAnswer, &item.IsCorrect, &item.PartOfSpeech, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func categoriesToStrings(categories []domain.PartOfSpeech) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func stringsToCategories(values []string) []domain.PartOfSpeech {
	out := make([]domain.PartOfSpeech, len(values))
	for i, v := range values {
		out[i] = domain.PartOfSpeech(v)
	}
	return out
}
