package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/wordnest/wordnest-backend/internal/adapter/genai"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// wireQuestion mirrors the JSON schema the prompt demands.
type wireQuestion struct {
	Word            string   `json:"word"`
	Question        string   `json:"question"`
	Translation     string   `json:"translation"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer"`
	Explanation     string   `json:"explanation"`
	PartOfSpeech    string   `json:"part_of_speech"`
	ExampleSentence string   `json:"example_sentence"`
	Importance      int      `json:"importance"`
	Synonyms        []string `json:"synonyms"`
}

type wireBatch struct {
	Questions []wireQuestion `json:"questions"`
}

// parseQuestions extracts and validates the question batch from a raw
// model response. Individually malformed questions are dropped without
// error; a batch with no usable question at all is a parse failure and
// triggers a retry upstream.
func (s *Service) parseQuestions(raw string) ([]domain.QuizQuestion, error) {
	jsonStr, err := genai.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var batch wireBatch
	if err := json.Unmarshal([]byte(jsonStr), &batch); err != nil {
		return nil, fmt.Errorf("decode question batch: %w", err)
	}

	questions := make([]domain.QuizQuestion, 0, len(batch.Questions))
	for _, wq := range batch.Questions {
		q, ok := toQuizQuestion(wq)
		if !ok {
			s.log.Debug("dropping malformed question", "question", wq.Question)
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions in batch of %d", len(batch.Questions))
	}
	return questions, nil
}

// toQuizQuestion validates one wire question. The answer must appear
// verbatim among the options; anything else is unusable for grading.
func toQuizQuestion(wq wireQuestion) (domain.QuizQuestion, bool) {
	if wq.Question == "" || wq.Answer == "" {
		return domain.QuizQuestion{}, false
	}
	if len(wq.Options) != domain.OptionCount {
		return domain.QuizQuestion{}, false
	}

	found := false
	var options [4]string
	for i, opt := range wq.Options {
		if opt == "" {
			return domain.QuizQuestion{}, false
		}
		options[i] = opt
		if opt == wq.Answer {
			found = true
		}
	}
	if !found {
		return domain.QuizQuestion{}, false
	}

	pos := domain.PartOfSpeech(wq.PartOfSpeech)
	if !pos.IsValid() {
		pos = domain.PartOfSpeechOther
	}

	return domain.QuizQuestion{
		Word:            domain.NormalizeText(wq.Word),
		Question:        wq.Question,
		Translation:     wq.Translation,
		Options:         options,
		Answer:          wq.Answer,
		Explanation:     wq.Explanation,
		PartOfSpeech:    pos,
		ExampleSentence: wq.ExampleSentence,
		Importance:      domain.ClampImportance(wq.Importance),
		Synonyms:        wq.Synonyms,
	}, true
}
