package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// GenerateOutput is the result of a generation attempt. LimitReached
// and Failed are business outcomes, not errors: the free-tier quota
// running out or the model producing unusable output are expected
// states the client must render, not 5xx conditions.
type GenerateOutput struct {
	Questions []domain.QuizQuestion

	// LimitReached is set when an unsubscribed user already spent
	// today's free generations. Questions is empty.
	LimitReached bool

	// Failed is set when the model never produced a usable batch
	// within the configured retries. Questions is empty.
	Failed bool
}

// Generate builds a quiz from the user's due words.
//
// Unsubscribed users pass a daily quota gate first. The model is asked
// up to the configured number of times; unusable output (no JSON, no
// valid question) waits the retry delay and tries again, while a
// transport error aborts immediately. A usage event is recorded only
// for a successful generation, so a failed attempt never costs quota.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	count := input.Count
	if count == 0 {
		count = s.quizCfg.DefaultQuestionCount
	}
	if count > s.quizCfg.MaxQuestionCount {
		count = s.quizCfg.MaxQuestionCount
	}

	allowed, err := s.checkQuota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return &GenerateOutput{LimitReached: true}, nil
	}

	due, err := s.schedule.DueWords(ctx, review.DueWordsInput{Limit: count})
	if err != nil {
		return nil, fmt.Errorf("due words: %w", err)
	}
	if len(due) == 0 {
		return &GenerateOutput{Questions: []domain.QuizQuestion{}}, nil
	}

	questions, err := s.generateQuestions(ctx, due, count)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		return &GenerateOutput{Failed: true}, nil
	}

	if err := s.usage.Record(ctx, &domain.UsageEvent{
		UserID:     userID,
		Kind:       domain.UsageKindQuizGeneration,
		OccurredAt: s.clock(),
	}); err != nil {
		return nil, fmt.Errorf("record usage: %w", err)
	}

	return &GenerateOutput{Questions: questions}, nil
}

// checkQuota reports whether the user may generate right now. An
// active subscription bypasses the daily limit entirely.
func (s *Service) checkQuota(ctx context.Context, userID uuid.UUID) (bool, error) {
	now := s.clock()

	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if sub.IsActive(now) {
			return true, nil
		}
	case errors.Is(err, domain.ErrNotFound):
		// never subscribed, fall through to the free tier
	default:
		return false, fmt.Errorf("get subscription: %w", err)
	}

	used, err := s.usage.CountSince(ctx, userID, domain.UsageKindQuizGeneration, review.DayStart(now))
	if err != nil {
		return false, fmt.Errorf("count usage: %w", err)
	}
	return used < s.quotaCfg.FreeGenerationsPerDay, nil
}

// generateQuestions runs the completion-and-parse loop. A nil slice
// with nil error means the retries were exhausted on unusable output.
func (s *Service) generateQuestions(ctx context.Context, due []review.DueWord, count int) ([]domain.QuizQuestion, error) {
	prompt := buildPrompt(due, count)

	for attempt := 1; attempt <= s.retries; attempt++ {
		raw, err := s.gen.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("completion: %w", err)
		}

		questions, parseErr := s.parseQuestions(raw)
		if parseErr == nil {
			linkWords(questions, due)
			return questions, nil
		}

		s.log.Warn("unusable model output",
			slog.Int("attempt", attempt),
			slog.String("error", parseErr.Error()))

		if attempt < s.retries {
			if err := s.pause(ctx, s.delay); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// linkWords resolves each question's word text against the due batch
// so graded answers can reach the right ledger row. A question naming
// a word outside the batch keeps a nil id; grading falls back to a
// catalog lookup by answer text.
func linkWords(questions []domain.QuizQuestion, due []review.DueWord) {
	byWord := make(map[string]uuid.UUID, len(due))
	for _, dw := range due {
		byWord[dw.Word.Word] = dw.Word.ID
	}
	for i := range questions {
		if id, ok := byWord[questions[i].Word]; ok {
			questions[i].WordID = id
		}
	}
}
