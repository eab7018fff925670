package domain

import "github.com/google/uuid"

// QuizQuestion is a generated multiple-choice question. Questions are
// ephemeral; they are not persisted until a test is graded, at which
// point each one becomes a TestResultItem.
type QuizQuestion struct {
	// WordID is the catalog word the question drills. Nil when the
	// model named a word outside the batch it was given.
	WordID          uuid.UUID
	Word            string
	Question        string
	Translation     string
	Options         [4]string
	Answer          string // must equal one of Options verbatim
	Explanation     string
	PartOfSpeech    PartOfSpeech
	ExampleSentence string
	Importance      int // clamped into 1..5
	Synonyms        []string
}

// OptionCount is the fixed number of choices per quiz question.
const OptionCount = 4
