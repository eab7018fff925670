package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

func TestService_RecordAnswer_Correct(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	now := time.Date(2026, 6, 15, 21, 30, 0, 0, time.Local)

	existing := &domain.UserWordProgress{
		ID:           uuid.New(),
		UserID:       userID,
		WordID:       wordID,
		CorrectCount: 2,
	}

	var markedOn time.Time
	mockProgress := &progressRepoMock{
		GetByUserAndWordFunc: func(ctx context.Context, uid, wid uuid.UUID) (*domain.UserWordProgress, error) {
			return existing, nil
		},
		MarkCorrectFunc: func(ctx context.Context, uid, wid uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error) {
			markedOn = answeredOn
			updated := *existing
			updated.CorrectCount = 3
			updated.CorrectDates = append(updated.CorrectDates, answeredOn)
			return &updated, nil
		},
	}
	mockWords := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
			return wordWith(id, 3), nil
		},
	}

	var loggedAnswer *domain.AnswerLog
	mockLogs := &answerLogRepoMock{
		CreateFunc: func(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
			loggedAnswer = log
			return log, nil
		},
	}

	s := newTestService(mockProgress, mockWords, mockLogs, now)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	updated, err := s.RecordAnswer(ctx, RecordAnswerInput{WordID: wordID, IsCorrect: true})
	if err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}

	if updated.CorrectCount != 3 {
		t.Errorf("expected streak 3, got %d", updated.CorrectCount)
	}
	if !markedOn.Equal(DayStart(now)) {
		t.Errorf("expected date appended at day start %v, got %v", DayStart(now), markedOn)
	}
	if loggedAnswer == nil {
		t.Fatal("expected an answer log entry")
	}
	if !loggedAnswer.IsCorrect {
		t.Error("answer log should record a correct answer")
	}
}

func TestService_RecordAnswer_IncorrectResetsStreak(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	now := time.Now()

	existing := &domain.UserWordProgress{
		ID:           uuid.New(),
		UserID:       userID,
		WordID:       wordID,
		CorrectCount: 4,
		CorrectDates: []time.Time{now.AddDate(0, 0, -7)},
	}

	markCorrectCalled := false
	mockProgress := &progressRepoMock{
		GetByUserAndWordFunc: func(ctx context.Context, uid, wid uuid.UUID) (*domain.UserWordProgress, error) {
			return existing, nil
		},
		MarkCorrectFunc: func(ctx context.Context, uid, wid uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error) {
			markCorrectCalled = true
			return existing, nil
		},
		MarkIncorrectFunc: func(ctx context.Context, uid, wid uuid.UUID) (*domain.UserWordProgress, error) {
			updated := *existing
			updated.CorrectCount = 0
			updated.IncorrectCount = existing.IncorrectCount + 1
			return &updated, nil
		},
	}
	mockWords := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
			return wordWith(id, 3), nil
		},
	}
	mockLogs := &answerLogRepoMock{
		CreateFunc: func(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
			if log.IsCorrect {
				t.Error("answer log should record an incorrect answer")
			}
			return log, nil
		},
	}

	s := newTestService(mockProgress, mockWords, mockLogs, now)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	updated, err := s.RecordAnswer(ctx, RecordAnswerInput{WordID: wordID, IsCorrect: false})
	if err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}

	if markCorrectCalled {
		t.Error("MarkCorrect must not be called for an incorrect answer")
	}
	if updated.CorrectCount != 0 {
		t.Errorf("expected streak reset to 0, got %d", updated.CorrectCount)
	}
	if len(updated.CorrectDates) != 1 {
		t.Errorf("incorrect answer must not touch the date history, got %d dates", len(updated.CorrectDates))
	}
}

func TestService_RecordAnswer_CreatesMissingProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	wordID := uuid.New()
	now := time.Now()

	created := false
	mockProgress := &progressRepoMock{
		GetByUserAndWordFunc: func(ctx context.Context, uid, wid uuid.UUID) (*domain.UserWordProgress, error) {
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, uid, wid uuid.UUID, registeredAt time.Time) (*domain.UserWordProgress, error) {
			created = true
			return &domain.UserWordProgress{ID: uuid.New(), UserID: uid, WordID: wid, RegisteredAt: registeredAt}, nil
		},
		MarkCorrectFunc: func(ctx context.Context, uid, wid uuid.UUID, answeredOn time.Time) (*domain.UserWordProgress, error) {
			return &domain.UserWordProgress{UserID: uid, WordID: wid, CorrectCount: 1, CorrectDates: []time.Time{answeredOn}}, nil
		},
	}
	mockWords := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
			return wordWith(id, 3), nil
		},
	}
	mockLogs := &answerLogRepoMock{
		CreateFunc: func(ctx context.Context, log *domain.AnswerLog) (*domain.AnswerLog, error) {
			return log, nil
		},
	}

	s := newTestService(mockProgress, mockWords, mockLogs, now)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if _, err := s.RecordAnswer(ctx, RecordAnswerInput{WordID: wordID, IsCorrect: true}); err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	if !created {
		t.Error("expected a ledger row to be created for the unregistered word")
	}
}

func TestService_RecordAnswer_UnknownWord(t *testing.T) {
	t.Parallel()

	mockWords := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
			return nil, domain.ErrNotFound
		},
	}

	s := newTestService(&progressRepoMock{}, mockWords, &answerLogRepoMock{}, time.Now())
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := s.RecordAnswer(ctx, RecordAnswerInput{WordID: uuid.New(), IsCorrect: true})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RecordAnswer_NoUserID(t *testing.T) {
	t.Parallel()

	s := newTestService(&progressRepoMock{}, &wordRepoMock{}, &answerLogRepoMock{}, time.Now())

	_, err := s.RecordAnswer(context.Background(), RecordAnswerInput{WordID: uuid.New()})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
