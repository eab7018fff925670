package review

import (
	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// DueWordsInput holds the parameters for fetching today's review queue.
type DueWordsInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *DueWordsInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 500 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordAnswerInput holds the parameters for recording one answer.
type RecordAnswerInput struct {
	WordID    uuid.UUID
	IsCorrect bool
}

// Validate checks all fields and collects all errors.
func (i *RecordAnswerInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
