package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
)

type schedulerMock struct {
	DueWordsFunc     func(ctx context.Context, input review.DueWordsInput) ([]review.DueWord, error)
	RecordAnswerFunc func(ctx context.Context, input review.RecordAnswerInput) (*domain.UserWordProgress, error)
}

func (m *schedulerMock) DueWords(ctx context.Context, input review.DueWordsInput) ([]review.DueWord, error) {
	return m.DueWordsFunc(ctx, input)
}

func (m *schedulerMock) RecordAnswer(ctx context.Context, input review.RecordAnswerInput) (*domain.UserWordProgress, error) {
	return m.RecordAnswerFunc(ctx, input)
}

type generatorMock struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	calls        int
}

func (m *generatorMock) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.CompleteFunc(ctx, prompt)
}

type wordRepoMock struct {
	GetByWordFunc func(ctx context.Context, word string) (*domain.WordDefinition, error)
	CreateFunc    func(ctx context.Context, def *domain.WordDefinition) (*domain.WordDefinition, error)
}

func (m *wordRepoMock) GetByWord(ctx context.Context, word string) (*domain.WordDefinition, error) {
	return m.GetByWordFunc(ctx, word)
}

func (m *wordRepoMock) Create(ctx context.Context, def *domain.WordDefinition) (*domain.WordDefinition, error) {
	return m.CreateFunc(ctx, def)
}

type resultRepoMock struct {
	CreateResultFunc    func(ctx context.Context, result *domain.TestResult) (*domain.TestResult, error)
	CreateItemsFunc     func(ctx context.Context, resultID uuid.UUID, items []*domain.TestResultItem) error
	GetLatestByUserFunc func(ctx context.Context, userID uuid.UUID) (*domain.TestResult, error)
}

func (m *resultRepoMock) CreateResult(ctx context.Context, result *domain.TestResult) (*domain.TestResult, error) {
	return m.CreateResultFunc(ctx, result)
}

func (m *resultRepoMock) CreateItems(ctx context.Context, resultID uuid.UUID, items []*domain.TestResultItem) error {
	return m.CreateItemsFunc(ctx, resultID, items)
}

func (m *resultRepoMock) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.TestResult, error) {
	return m.GetLatestByUserFunc(ctx, userID)
}

type usageRepoMock struct {
	RecordFunc     func(ctx context.Context, event *domain.UsageEvent) error
	CountSinceFunc func(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (int, error)
}

func (m *usageRepoMock) Record(ctx context.Context, event *domain.UsageEvent) error {
	return m.RecordFunc(ctx, event)
}

func (m *usageRepoMock) CountSince(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (int, error) {
	return m.CountSinceFunc(ctx, userID, kind, since)
}

type subscriptionRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

func (m *subscriptionRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	return m.GetByUserIDFunc(ctx, userID)
}
