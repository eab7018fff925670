// Package quiz implements AI quiz generation and grading: the quota
// gate, the model-output parsing loop, and the scoring pipeline that
// turns answers into a persisted test result.
package quiz

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/config"
	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type scheduler interface {
	DueWords(ctx context.Context, input review.DueWordsInput) ([]review.DueWord, error)
	RecordAnswer(ctx context.Context, input review.RecordAnswerInput) (*domain.UserWordProgress, error)
}

type generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type wordRepo interface {
	GetByWord(ctx context.Context, word string) (*domain.WordDefinition, error)
	Create(ctx context.Context, def *domain.WordDefinition) (*domain.WordDefinition, error)
}

type resultRepo interface {
	CreateResult(ctx context.Context, result *domain.TestResult) (*domain.TestResult, error)
	CreateItems(ctx context.Context, resultID uuid.UUID, items []*domain.TestResultItem) error
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.TestResult, error)
}

type usageRepo interface {
	Record(ctx context.Context, event *domain.UsageEvent) error
	CountSince(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (int, error)
}

type subscriptionRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the quiz business logic.
type Service struct {
	schedule      scheduler
	gen           generator
	words         wordRepo
	results       resultRepo
	usage         usageRepo
	subscriptions subscriptionRepo
	log           *slog.Logger

	quotaCfg config.QuotaConfig
	quizCfg  config.QuizConfig
	retries  int
	delay    time.Duration

	// swappable in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService creates a new quiz service.
func NewService(
	log *slog.Logger,
	schedule scheduler,
	gen generator,
	words wordRepo,
	results resultRepo,
	usage usageRepo,
	subscriptions subscriptionRepo,
	aiCfg config.AIConfig,
	quotaCfg config.QuotaConfig,
	quizCfg config.QuizConfig,
) *Service {
	return &Service{
		schedule:      schedule,
		gen:           gen,
		words:         words,
		results:       results,
		usage:         usage,
		subscriptions: subscriptions,
		log:           log,
		quotaCfg:      quotaCfg,
		quizCfg:       quizCfg,
		retries:       aiCfg.ParseRetries,
		delay:         aiCfg.RetryDelay,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// pause waits the retry delay or returns early when ctx is done.
func (s *Service) pause(ctx context.Context, d time.Duration) error {
	if s.sleep != nil {
		return s.sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
