package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// RecordAnswer applies one answer to the user's ledger.
//
// A correct answer extends the streak by one and appends today's date
// to the review history. An incorrect answer resets the streak to zero
// and leaves the history untouched, so the word becomes due immediately.
// Either way the raw event lands in the answer log. A missing ledger
// row is created on the fly so answers against unregistered words are
// never lost.
func (s *Service) RecordAnswer(ctx context.Context, input RecordAnswerInput) (*domain.UserWordProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Reject answers against words that do not exist at all.
	if _, err := s.words.GetByID(ctx, input.WordID); err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	now := s.clock()

	var updated *domain.UserWordProgress
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureProgress(txCtx, userID, input.WordID); err != nil {
			return err
		}

		var err error
		if input.IsCorrect {
			updated, err = s.progress.MarkCorrect(txCtx, userID, input.WordID, DayStart(now))
		} else {
			updated, err = s.progress.MarkIncorrect(txCtx, userID, input.WordID)
		}
		if err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		if _, err := s.logs.Create(txCtx, &domain.AnswerLog{
			ID:         uuid.New(),
			UserID:     userID,
			WordID:     input.WordID,
			IsCorrect:  input.IsCorrect,
			AnsweredAt: now,
		}); err != nil {
			return fmt.Errorf("create answer log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ensureProgress creates the ledger row when the user answers a word
// they never explicitly registered. A concurrent create is fine; the
// later update sees the winner's row.
func (s *Service) ensureProgress(ctx context.Context, userID, wordID uuid.UUID) error {
	_, err := s.progress.GetByUserAndWord(ctx, userID, wordID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get progress: %w", err)
	}

	if _, err := s.progress.Create(ctx, userID, wordID, s.clock()); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}
