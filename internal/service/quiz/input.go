package quiz

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// GenerateInput holds the parameters for generating a quiz.
type GenerateInput struct {
	// Count is the requested number of questions; 0 means the
	// configured default.
	Count int
}

// Validate checks all fields and collects all errors.
func (i *GenerateInput) Validate() error {
	var errs []domain.FieldError

	if i.Count < 0 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GradeItem is one answered question.
type GradeItem struct {
	// WordID links the question back to the user's ledger. When nil
	// the word is resolved from the catalog by answer text at grade
	// time, created on the fly if unknown.
	WordID        uuid.UUID
	Question      string
	Options       []string
	CorrectAnswer string
	// UserAnswer is either the chosen option text or a single option
	// letter (A-D), which is resolved against Options before matching.
	UserAnswer   string
	PartOfSpeech domain.PartOfSpeech
}

// GradeInput holds the answers of one finished quiz.
type GradeInput struct {
	Items []GradeItem
}

// Validate checks all fields and collects all errors.
func (i *GradeInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "required"})
	}
	for idx, item := range i.Items {
		if item.Question == "" {
			errs = append(errs, domain.FieldError{Field: "items", Message: "question required at index " + strconv.Itoa(idx)})
		}
		if item.CorrectAnswer == "" {
			errs = append(errs, domain.FieldError{Field: "items", Message: "correct_answer required at index " + strconv.Itoa(idx)})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
