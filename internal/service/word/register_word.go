package word

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wordnest/wordnest-backend/internal/adapter/genai"
	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

type wireDefinition struct {
	Word            string `json:"word"`
	PartOfSpeech    string `json:"part_of_speech"`
	Meaning         string `json:"meaning"`
	ExampleSentence string `json:"example_sentence"`
	Translation     string `json:"translation"`
	Importance      int    `json:"importance"`
}

// RegisterWord adds a word to the user's ledger, generating a catalog
// definition when one does not exist yet.
//
// The catalog is shared and deduplicated on (word, example sentence):
// if the generated definition collides with an existing entry the
// existing one wins. Re-registering an already registered word returns
// the existing ledger state rather than an error.
func (s *Service) RegisterWord(ctx context.Context, input RegisterWordInput) (*domain.WordDefinition, *domain.UserWordProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	normalized := domain.NormalizeText(input.Word)

	def, err := s.generateDefinition(ctx, normalized)
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.words.GetByWordAndExample(ctx, def.Word, def.ExampleSentence)
	switch {
	case err == nil:
		def = stored
	case errors.Is(err, domain.ErrNotFound):
		def, err = s.words.Create(ctx, def)
		if err != nil {
			if !errors.Is(err, domain.ErrAlreadyExists) {
				return nil, nil, fmt.Errorf("create word: %w", err)
			}
			// Lost a concurrent create; fetch the winner.
			def, err = s.words.GetByWordAndExample(ctx, def.Word, def.ExampleSentence)
			if err != nil {
				return nil, nil, fmt.Errorf("get word after conflict: %w", err)
			}
		}
	default:
		return nil, nil, fmt.Errorf("get word: %w", err)
	}

	progress, err := s.progress.Create(ctx, userID, def.ID, s.clock())
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil, fmt.Errorf("create progress: %w", err)
		}
		progress, err = s.progress.GetByUserAndWord(ctx, userID, def.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("get progress: %w", err)
		}
	}

	return def, progress, nil
}

// generateDefinition asks the model for a complete dictionary entry.
func (s *Service) generateDefinition(ctx context.Context, w string) (*domain.WordDefinition, error) {
	raw, err := s.gen.Complete(ctx, buildDefinitionPrompt(w))
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	jsonStr, err := genai.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("definition for %q: %w", w, err)
	}

	var wd wireDefinition
	if err := json.Unmarshal([]byte(jsonStr), &wd); err != nil {
		return nil, fmt.Errorf("decode definition for %q: %w", w, err)
	}
	if wd.Meaning == "" || wd.ExampleSentence == "" {
		return nil, fmt.Errorf("incomplete definition for %q", w)
	}

	pos := domain.PartOfSpeech(wd.PartOfSpeech)
	if !pos.IsValid() {
		pos = domain.PartOfSpeechOther
	}

	return &domain.WordDefinition{
		Word:            w,
		PartOfSpeech:    pos,
		Meaning:         wd.Meaning,
		ExampleSentence: wd.ExampleSentence,
		Translation:     wd.Translation,
		Importance:      domain.ClampImportance(wd.Importance),
	}, nil
}

func buildDefinitionPrompt(w string) string {
	return fmt.Sprintf(`You are a TOEIC vocabulary dictionary editor.

Produce a dictionary entry for the English word "%s".

Output ONLY a valid JSON object matching this exact schema:
{
  "word": "%s",
  "part_of_speech": "<NOUN|VERB|ADJECTIVE|ADVERB|PRONOUN|PREPOSITION|CONJUNCTION|INTERJECTION|PHRASE|IDIOM|OTHER>",
  "meaning": "<clear English definition suitable for TOEIC learners>",
  "example_sentence": "<natural business-English example using the word>",
  "translation": "<Japanese translation of the word>",
  "importance": <1-5, how frequent the word is on the TOEIC test>
}

Rules:
- The example sentence must sound like TOEIC reading material
- Output ONLY the JSON, no markdown, no explanations`, w, w)
}
