package word

import (
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// RegisterWordInput holds the parameters for registering a word.
type RegisterWordInput struct {
	Word string
}

// Validate checks all fields and collects all errors.
func (i *RegisterWordInput) Validate() error {
	var errs []domain.FieldError

	if i.Word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if len(i.Word) > 100 {
		errs = append(errs, domain.FieldError{Field: "word", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListWordsInput holds the parameters for browsing the catalog.
type ListWordsInput struct {
	Search        string
	PartOfSpeech  string
	MinImportance int
	Limit         int
	Offset        int
}

// Validate checks all fields and collects all errors.
func (i *ListWordsInput) Validate() error {
	var errs []domain.FieldError

	if i.PartOfSpeech != "" && !domain.PartOfSpeech(i.PartOfSpeech).IsValid() {
		errs = append(errs, domain.FieldError{Field: "part_of_speech", Message: "unknown part of speech"})
	}
	if i.MinImportance < 0 || i.MinImportance > domain.MaxImportance {
		errs = append(errs, domain.FieldError{Field: "min_importance", Message: "must be between 0 and 5"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
