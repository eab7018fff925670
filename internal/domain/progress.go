package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserWordProgress is one user's mastery state for one catalog word.
// Exactly one row exists per (UserID, WordID) pair; the database enforces
// the uniqueness so concurrent lookup-or-create races fail loudly instead
// of corrupting the ledger.
type UserWordProgress struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	WordID         uuid.UUID
	CorrectCount   int         // rolling streak, resets to 0 on a miss
	CorrectDates   []time.Time // append-only calendar dates of correct answers
	IncorrectCount int
	RegisteredAt   time.Time
}

// LastReviewDate returns the most recent correct-answer date, or the
// registration date when the word has never been answered correctly.
func (p *UserWordProgress) LastReviewDate() time.Time {
	if len(p.CorrectDates) == 0 {
		return p.RegisteredAt
	}
	return p.CorrectDates[len(p.CorrectDates)-1]
}

// AnswerLog is an append-only audit record of a single graded answer.
// It is evidence, independent of the mutable counters on UserWordProgress.
type AnswerLog struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	WordID     uuid.UUID
	IsCorrect  bool
	AnsweredAt time.Time
}
