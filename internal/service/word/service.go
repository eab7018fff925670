// Package word implements catalog operations: registering new words
// with generated definitions and browsing the shared catalog.
package word

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/adapter/postgres/word"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error)
	GetByWordAndExample(ctx context.Context, w, example string) (*domain.WordDefinition, error)
	Create(ctx context.Context, def *domain.WordDefinition) (*domain.WordDefinition, error)
	List(ctx context.Context, filter word.Filter) ([]*domain.WordDefinition, error)
}

type progressRepo interface {
	GetByUserAndWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
	Create(ctx context.Context, userID, wordID uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error)
}

type generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the word catalog business logic.
type Service struct {
	words    wordRepo
	progress progressRepo
	gen      generator
	log      *slog.Logger

	now func() time.Time
}

// NewService creates a new word service.
func NewService(log *slog.Logger, words wordRepo, progress progressRepo, gen generator) *Service {
	return &Service{
		words:    words,
		progress: progress,
		gen:      gen,
		log:      log,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
