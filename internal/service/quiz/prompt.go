package quiz

import (
	"fmt"
	"strings"

	"github.com/wordnest/wordnest-backend/internal/service/review"
)

// buildPrompt creates the generation prompt for one batch of due words.
func buildPrompt(due []review.DueWord, count int) string {
	var words strings.Builder
	for _, dw := range due {
		w := dw.Word
		fmt.Fprintf(&words, "- %s (%s): %s / %s\n", w.Word, w.PartOfSpeech, w.Meaning, w.Translation)
	}

	return fmt.Sprintf(`You are a TOEIC test writer.

Create %d multiple-choice vocabulary questions for the following words the learner is reviewing today:

%s
Output ONLY a valid JSON object matching this exact schema:
{
  "questions": [
    {
      "word": "<the word being tested, copied verbatim from the list above>",
      "question": "<TOEIC-style sentence with a blank or a meaning question>",
      "translation": "<Japanese translation of the question sentence>",
      "options": ["<option A>", "<option B>", "<option C>", "<option D>"],
      "answer": "<the correct option, copied verbatim from options>",
      "explanation": "<short explanation in Japanese why the answer is correct>",
      "part_of_speech": "<NOUN|VERB|ADJECTIVE|ADVERB|PRONOUN|PREPOSITION|CONJUNCTION|INTERJECTION|PHRASE|IDIOM|OTHER>",
      "example_sentence": "<natural business-English example using the word>",
      "importance": <1-5>,
      "synonyms": ["<synonym 1>", "<synonym 2>"]
    }
  ]
}

Rules:
- "word" must name exactly one word from the list
- Exactly 4 options per question, one of them correct
- "answer" must be byte-for-byte identical to one of the options
- Questions target TOEIC 600-900 business vocabulary
- Output ONLY the JSON, no markdown, no explanations`, count, words.String())
}
