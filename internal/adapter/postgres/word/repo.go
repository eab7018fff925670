// Package word implements the WordDefinition repository using PostgreSQL.
package word

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wordnest/wordnest-backend/internal/adapter/postgres"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Repo provides word catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordColumns = `id, word, part_of_speech, meaning, example_sentence, translation, importance, created_at, updated_at`

const getByIDSQL = `
SELECT ` + wordColumns + `
FROM word_definitions
WHERE id = $1`

const getByWordAndExampleSQL = `
SELECT ` + wordColumns + `
FROM word_definitions
WHERE word = $1 AND example_sentence = $2`

const getByWordSQL = `
SELECT ` + wordColumns + `
FROM word_definitions
WHERE word = $1
ORDER BY created_at
LIMIT 1`

const createSQL = `
INSERT INTO word_definitions (id, word, part_of_speech, meaning, example_sentence, translation, importance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + wordColumns

const getByIDsSQL = `
SELECT ` + wordColumns + `
FROM word_definitions
WHERE id = ANY($1::uuid[])`

// GetByID returns a catalog word by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	w, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_definition", id)
	}
	return w, nil
}

// GetByWordAndExample looks up a catalog word by its dedup key.
// Different senses of the same word carry different example sentences,
// so the pair identifies one catalog entry.
// Returns domain.ErrNotFound when no such entry exists.
func (r *Repo) GetByWordAndExample(ctx context.Context, word, exampleSentence string) (*domain.WordDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByWordAndExampleSQL, domain.NormalizeText(word), exampleSentence)
	w, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_definition", uuid.Nil)
	}
	return w, nil
}

// GetByWord returns the oldest catalog entry for a word text,
// ignoring the example-sentence half of the dedup key. Used when an
// answer has to be mapped back to a word without knowing the sense.
// Returns domain.ErrNotFound when the catalog has no such word.
func (r *Repo) GetByWord(ctx context.Context, word string) (*domain.WordDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByWordSQL, domain.NormalizeText(word))
	w, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_definition", uuid.Nil)
	}
	return w, nil
}

// GetByIDs returns catalog words for the given ids, unordered.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.WordDefinition, error) {
	if len(ids) == 0 {
		return []*domain.WordDefinition{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get word_definitions by ids: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// Create inserts a new catalog word. The word text is normalized before
// storage. Returns domain.ErrAlreadyExists when the (word, example_sentence)
// pair is already in the catalog.
func (r *Repo) Create(ctx context.Context, w *domain.WordDefinition) (*domain.WordDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		w.ID,
		domain.NormalizeText(w.Word),
		string(w.PartOfSpeech),
		w.Meaning,
		w.ExampleSentence,
		w.Translation,
		domain.ClampImportance(w.Importance),
		w.CreatedAt,
	)

	created, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word_definition", w.ID)
	}
	return created, nil
}

// Filter defines parameters for listing catalog words.
type Filter struct {
	// Search performs ILIKE '%...%' on the word text.
	Search *string

	// PartOfSpeech filters by grammatical category.
	PartOfSpeech *domain.PartOfSpeech

	// MinImportance keeps only words at or above the given rank.
	MinImportance *int

	// Limit caps the result set. Default 50, max 200.
	Limit int

	// Offset skips rows for pagination.
	Offset int
}

func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns catalog words matching the filter, ordered by importance
// descending then word ascending.
func (r *Repo) List(ctx context.Context, filter Filter) ([]*domain.WordDefinition, error) {
	filter.normalize()

	builder := sq.Select(wordColumns).
		From("word_definitions").
		OrderBy("importance DESC", "word ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(sq.Dollar)

	if filter.Search != nil && *filter.Search != "" {
		builder = builder.Where(sq.ILike{"word": "%" + domain.NormalizeText(*filter.Search) + "%"})
	}
	if filter.PartOfSpeech != nil {
		builder = builder.Where(sq.Eq{"part_of_speech": string(*filter.PartOfSpeech)})
	}
	if filter.MinImportance != nil {
		builder = builder.Where(sq.GtOrEq{"importance": *filter.MinImportance})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list word_definitions: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanWord(row pgx.Row) (*domain.WordDefinition, error) {
	var (
		w   domain.WordDefinition
		pos string
	)
	if err := row.Scan(
		&w.ID, &w.Word, &pos, &w.Meaning, &w.ExampleSentence,
		&w.Translation, &w.Importance, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	w.PartOfSpeech = domain.PartOfSpeech(pos)
	return &w, nil
}

func collectWords(rows pgx.Rows) ([]*domain.WordDefinition, error) {
	var words []*domain.WordDefinition
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word_definition: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word_definitions: %w", err)
	}
	if words == nil {
		words = []*domain.WordDefinition{}
	}
	return words, nil
}
