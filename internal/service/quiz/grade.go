package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// GradeOutput is the persisted outcome of a graded quiz.
type GradeOutput struct {
	Result *domain.TestResult
	Items  []*domain.TestResultItem
}

// Grade scores a finished quiz and persists the outcome.
//
// Matching is exact string equality after resolving option letters.
// The predicted score moves from the user's previous prediction (or
// the default prior) by (accuracy - 0.5) * 200, clamped to the TOEIC
// range. The summary row is written first; if a later write fails the
// summary deliberately stays, because a partially recorded result is
// worth more than none.
func (s *Service) Grade(ctx context.Context, input GradeInput) (*GradeOutput, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()

	items := make([]*domain.TestResultItem, len(input.Items))
	correctCount := 0
	for i, gi := range input.Items {
		if len(gi.Options) == domain.OptionCount {
			s.warnAnswerMismatch(gi)
		}
		userAnswer := resolveAnswer(gi)
		isCorrect := userAnswer == gi.CorrectAnswer
		if isCorrect {
			correctCount++
		}
		items[i] = &domain.TestResultItem{
			ID:            uuid.New(),
			Question:      gi.Question,
			CorrectAnswer: gi.CorrectAnswer,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
			PartOfSpeech:  gi.PartOfSpeech,
		}
	}

	total := len(input.Items)
	accuracy := float64(correctCount) / float64(total)

	prior, err := s.priorScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	predicted := predictScore(prior, accuracy)

	result, err := s.results.CreateResult(ctx, &domain.TestResult{
		ID:             uuid.New(),
		UserID:         userID,
		CorrectCount:   correctCount,
		TotalCount:     total,
		Accuracy:       accuracy,
		PredictedScore: predicted,
		WeakCategories: weakCategories(items),
		CreatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}

	if err := s.results.CreateItems(ctx, result.ID, items); err != nil {
		return nil, fmt.Errorf("create result items: %w", err)
	}

	// Feed each answer back into the review ledger so the scheduler
	// sees quiz outcomes the same way it sees flashcard reviews. Runs
	// once per question: an item without a word id is resolved against
	// the catalog by its answer text, creating the word if needed.
	for i, gi := range input.Items {
		wordID := gi.WordID
		if wordID == uuid.Nil {
			def, err := s.resolveWord(ctx, gi)
			if err != nil {
				return nil, fmt.Errorf("resolve word for %q: %w", gi.CorrectAnswer, err)
			}
			wordID = def.ID
		}
		if _, err := s.schedule.RecordAnswer(ctx, review.RecordAnswerInput{
			WordID:    wordID,
			IsCorrect: items[i].IsCorrect,
		}); err != nil {
			return nil, fmt.Errorf("record answer for word %s: %w", wordID, err)
		}
	}

	return &GradeOutput{Result: result, Items: items}, nil
}

// resolveWord finds the catalog word behind a graded answer, creating
// a bare definition when the answer names a word the catalog has never
// seen. A lost create race falls back to the winner's row.
func (s *Service) resolveWord(ctx context.Context, gi GradeItem) (*domain.WordDefinition, error) {
	text := domain.NormalizeText(gi.CorrectAnswer)

	def, err := s.words.GetByWord(ctx, text)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pos := gi.PartOfSpeech
	if !pos.IsValid() {
		pos = domain.PartOfSpeechOther
	}
	created, err := s.words.Create(ctx, &domain.WordDefinition{
		ID:           uuid.New(),
		Word:         text,
		PartOfSpeech: pos,
		Importance:   domain.MinImportance,
		CreatedAt:    s.clock(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.words.GetByWord(ctx, text)
		}
		return nil, err
	}
	return created, nil
}

// resolveAnswer maps a single option letter (A-D) to the option text.
// Anything else is taken as the literal answer. The comparison itself
// never normalizes: a trailing space is a wrong answer, and if the
// model disobeyed the verbatim-answer rule we log it rather than guess.
func resolveAnswer(gi GradeItem) string {
	if len(gi.UserAnswer) == 1 && len(gi.Options) == domain.OptionCount {
		c := gi.UserAnswer[0]
		if c >= 'A' && c <= 'D' {
			return gi.Options[c-'A']
		}
		if c >= 'a' && c <= 'd' {
			return gi.Options[c-'a']
		}
	}
	return gi.UserAnswer
}

// priorScore returns the user's previous predicted score, or the
// default prior for a first quiz.
func (s *Service) priorScore(ctx context.Context, userID uuid.UUID) (int, error) {
	latest, err := s.results.GetLatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultPriorScore, nil
		}
		return 0, fmt.Errorf("get latest result: %w", err)
	}
	return latest.PredictedScore, nil
}

// predictScore moves the prior by (accuracy - 0.5) * 200 and clamps to
// the valid TOEIC range. 50% accuracy keeps the score unchanged.
func predictScore(prior int, accuracy float64) int {
	return domain.ClampScore(prior + int(math.Round((accuracy-0.5)*200)))
}

// weakCategories returns the top parts of speech by miss count, at
// most domain.MaxWeakCategories, ordered by miss count descending with
// ties kept in first-miss order.
func weakCategories(items []*domain.TestResultItem) []domain.PartOfSpeech {
	missCounts := map[domain.PartOfSpeech]int{}
	var order []domain.PartOfSpeech
	for _, item := range items {
		if item.IsCorrect {
			continue
		}
		pos := item.PartOfSpeech
		if _, seen := missCounts[pos]; !seen {
			order = append(order, pos)
		}
		missCounts[pos]++
	}

	// Insertion sort keeps the first-miss order stable for equal
	// counts; the list is tiny.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && missCounts[order[j]] > missCounts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	if len(order) > domain.MaxWeakCategories {
		order = order[:domain.MaxWeakCategories]
	}
	return order
}

// warnAnswerMismatch logs a correct answer that is absent from the
// options, which means the generation-side validation was bypassed.
func (s *Service) warnAnswerMismatch(gi GradeItem) {
	for _, opt := range gi.Options {
		if opt == gi.CorrectAnswer {
			return
		}
	}
	s.log.Warn("correct answer not among options",
		slog.String("question", gi.Question))
}
