package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with default values. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtea",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedWord creates a catalog word. Returns the filled domain.WordDefinition.
func SeedWord(t *testing.T, pool *pgxpool.Pool, importance int) domain.WordDefinition {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	word := domain.WordDefinition{
		ID:              uuid.New(),
		Word:            "testword-" + suffix,
		PartOfSpeech:    domain.PartOfSpeechNoun,
		Meaning:         "a word used for testing",
		ExampleSentence: "This testword-" + suffix + " appears in a sentence.",
		Translation:     "テスト用の単語",
		Importance:      domain.ClampImportance(importance),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO word_definitions (id, word, part_of_speech, meaning, example_sentence, translation, importance, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		word.ID, word.Word, string(word.PartOfSpeech), word.Meaning, word.ExampleSentence,
		word.Translation, word.Importance, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return word
}

// SeedProgress creates a ledger row binding a user to a word with the given
// streak. correctDates holds one date per element, oldest first.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, userID, wordID uuid.UUID, correctCount int, correctDates []time.Time) domain.UserWordProgress {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	progress := domain.UserWordProgress{
		ID:           uuid.New(),
		UserID:       userID,
		WordID:       wordID,
		CorrectCount: correctCount,
		CorrectDates: correctDates,
		RegisteredAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_word_progress (id, user_id, word_id, correct_count, correct_dates, incorrect_count, registered_at)
		 VALUES ($1, $2, $3, $4, $5, 0, $6)`,
		progress.ID, progress.UserID, progress.WordID, progress.CorrectCount, correctDates, progress.RegisteredAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress insert: %v", err)
	}

	return progress
}
