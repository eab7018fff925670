package domain

import (
	"time"

	"github.com/google/uuid"
)

// TOEIC score scale bounds.
const (
	MinScore = 0
	MaxScore = 990
)

// DefaultPriorScore is assumed for users with no graded tests yet.
const DefaultPriorScore = 450

// MaxWeakCategories caps the weak-category list on a TestResult.
const MaxWeakCategories = 2

// TestResult is the immutable outcome of one completed quiz submission.
type TestResult struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CorrectCount   int
	TotalCount     int
	Accuracy       float64        // 0..1
	PredictedScore int            // clamped to [MinScore, MaxScore]
	WeakCategories []PartOfSpeech // most-missed first, at most MaxWeakCategories
	CreatedAt      time.Time
}

// TestResultItem is one graded question, owned by its TestResult.
// Rows cascade on account deletion.
type TestResultItem struct {
	ID            uuid.UUID
	ResultID      uuid.UUID
	Question      string
	CorrectAnswer string
	UserAnswer    string
	IsCorrect     bool
	PartOfSpeech  PartOfSpeech
	CreatedAt     time.Time
}

// ClampScore forces a predicted score into the TOEIC scale.
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
