// Package review implements the spaced-repetition scheduler: which
// registered words are due today and how answers move the ledger.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressRepo interface {
	GetByUserAndWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserWordProgress, error)
	Create(ctx context.Context, userID, wordID uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error)
	MarkCorrect(ctx context.Context, userID, wordID uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error)
	MarkIncorrect(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
}

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.WordDefinition, error)
}

type answerLogRepo interface {
	Create(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the review scheduling business logic.
type Service struct {
	progress progressRepo
	words    wordRepo
	logs     answerLogRepo
	tx       txManager
	log      *slog.Logger

	// now is swappable in tests; production wiring leaves it nil and
	// falls back to time.Now.
	now func() time.Time
}

// NewService creates a new review service.
func NewService(
	log *slog.Logger,
	progress progressRepo,
	words wordRepo,
	logs answerLogRepo,
	tx txManager,
) *Service {
	return &Service{
		progress: progress,
		words:    words,
		logs:     logs,
		tx:       tx,
		log:      log,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
