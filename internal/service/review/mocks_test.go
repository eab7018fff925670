package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// Hand-written mocks for the private repo interfaces. A nil Func panics
// when called, which catches unexpected repo usage in tests.

type progressRepoMock struct {
	GetByUserAndWordFunc func(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.UserWordProgress, error)
	CreateFunc           func(ctx context.Context, userID, wordID uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error)
	MarkCorrectFunc      func(ctx context.Context, userID, wordID uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error)
	MarkIncorrectFunc    func(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error)
}

func (m *progressRepoMock) GetByUserAndWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error) {
	return m.GetByUserAndWordFunc(ctx, userID, wordID)
}

func (m *progressRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserWordProgress, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *progressRepoMock) Create(ctx context.Context, userID, wordID uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error) {
	return m.CreateFunc(ctx, userID, wordID, registeredAt)
}

func (m *progressRepoMock) MarkCorrect(ctx context.Context, userID, wordID uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error) {
	return m.MarkCorrectFunc(ctx, userID, wordID, answeredOn)
}

func (m *progressRepoMock) MarkIncorrect(ctx context.Context, userID, wordID uuid.UUID) (*domain.UserWordProgress, error) {
	return m.MarkIncorrectFunc(ctx, userID, wordID)
}

type wordRepoMock struct {
	GetByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error)
	GetByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]*domain.WordDefinition, error)
}

func (m *wordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *wordRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.WordDefinition, error) {
	return m.GetByIDsFunc(ctx, ids)
}

type answerLogRepoMock struct {
	CreateFunc func(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error)
}

func (m *answerLogRepoMock) Create(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
	return m.CreateFunc(ctx, log)
}

// txManagerMock runs the callback inline, no transaction semantics.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
