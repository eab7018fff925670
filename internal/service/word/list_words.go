package word

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/adapter/postgres/word"
	"github.com/wordnest/wordnest-backend/internal/domain"
)

// ListWords browses the shared catalog with optional filters.
func (s *Service) ListWords(ctx context.Context, input ListWordsInput) ([]*domain.WordDefinition, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := word.Filter{
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.Search != "" {
		search := domain.NormalizeText(input.Search)
		filter.Search = &search
	}
	if input.PartOfSpeech != "" {
		pos := domain.PartOfSpeech(input.PartOfSpeech)
		filter.PartOfSpeech = &pos
	}
	if input.MinImportance > 0 {
		filter.MinImportance = &input.MinImportance
	}

	words, err := s.words.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// GetWord returns one catalog entry.
func (s *Service) GetWord(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	w, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return w, nil
}
