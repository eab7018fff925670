// Package stats aggregates a user's learning history into the dashboard
// numbers the web client shows.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

type progressRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserWordProgress, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type resultRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.TestResult, error)
}

type answerLogRepo interface {
	CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (correct, total int, err error)
}

// Service implements stats aggregation.
type Service struct {
	log      *slog.Logger
	progress progressRepo
	results  resultRepo
	logs     answerLogRepo

	now func() time.Time
}

// NewService creates a new stats service instance.
func NewService(logger *slog.Logger, progress progressRepo, results resultRepo, logs answerLogRepo) *Service {
	return &Service{
		log:      logger.With("service", "stats"),
		progress: progress,
		results:  results,
		logs:     logs,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
