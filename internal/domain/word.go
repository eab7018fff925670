package domain

import (
	"time"

	"github.com/google/uuid"
)

// Importance bounds for catalog words. Encoded as a star count in the UI,
// stored as a plain integer.
const (
	MinImportance = 1
	MaxImportance = 5
)

// ClampImportance forces an importance value into [MinImportance, MaxImportance].
// Out-of-range generator output is clamped, not rejected.
func ClampImportance(v int) int {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}

// WordDefinition is a canonical catalog entry shared across users.
// Deduplicated by (word, example_sentence) so different senses of the
// same word get separate rows.
type WordDefinition struct {
	ID              uuid.UUID
	Word            string // case-normalized, see NormalizeText
	PartOfSpeech    PartOfSpeech
	Meaning         string
	ExampleSentence string
	Translation     string
	Importance      int // 1..5
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
