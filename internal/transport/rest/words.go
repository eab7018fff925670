package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/word"
)

// wordService defines the minimal interface needed by WordHandler.
type wordService interface {
	RegisterWord(ctx context.Context, input word.RegisterWordInput) (*domain.WordDefinition, *domain.UserWordProgress, error)
	ListWords(ctx context.Context, input word.ListWordsInput) ([]*domain.WordDefinition, error)
	GetWord(ctx context.Context, id uuid.UUID) (*domain.WordDefinition, error)
}

// WordHandler serves word catalog REST endpoints.
type WordHandler struct {
	svc wordService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc wordService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "words")}
}

type registerWordRequest struct {
	Word string `json:"word"`
}

type wordResponse struct {
	ID              string `json:"id"`
	Word            string `json:"word"`
	PartOfSpeech    string `json:"partOfSpeech"`
	Meaning         string `json:"meaning"`
	ExampleSentence string `json:"exampleSentence"`
	Translation     string `json:"translation"`
	Importance      int    `json:"importance"`
}

type progressResponse struct {
	WordID         string    `json:"wordId"`
	CorrectCount   int       `json:"correctCount"`
	IncorrectCount int       `json:"incorrectCount"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

type registerWordResponse struct {
	Word     wordResponse     `json:"word"`
	Progress progressResponse `json:"progress"`
}

// Register handles POST /words. Looks up or generates a definition and
// adds the word to the caller's study ledger.
func (h *WordHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	def, progress, err := h.svc.RegisterWord(r.Context(), word.RegisterWordInput{Word: req.Word})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerWordResponse{
		Word:     toWordResponse(def),
		Progress: toProgressResponse(progress),
	})
}

// List handles GET /words with search, part_of_speech, min_importance,
// limit and offset query parameters.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := word.ListWordsInput{
		Search:       q.Get("search"),
		PartOfSpeech: q.Get("part_of_speech"),
	}
	var err error
	if input.MinImportance, err = intQuery(q.Get("min_importance")); err != nil {
		writeError(w, http.StatusBadRequest, "min_importance must be an integer")
		return
	}
	if input.Limit, err = intQuery(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if input.Offset, err = intQuery(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	words, err := h.svc.ListWords(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	out := make([]wordResponse, 0, len(words))
	for _, def := range words {
		out = append(out, toWordResponse(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": out})
}

// Get handles GET /words/{id}.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	def, err := h.svc.GetWord(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(def))
}

func intQuery(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func toWordResponse(def *domain.WordDefinition) wordResponse {
	return wordResponse{
		ID:              def.ID.String(),
		Word:            def.Word,
		PartOfSpeech:    def.PartOfSpeech.String(),
		Meaning:         def.Meaning,
		ExampleSentence: def.ExampleSentence,
		Translation:     def.Translation,
		Importance:      def.Importance,
	}
}

func toProgressResponse(p *domain.UserWordProgress) progressResponse {
	return progressResponse{
		WordID:         p.WordID.String(),
		CorrectCount:   p.CorrectCount,
		IncorrectCount: p.IncorrectCount,
		RegisteredAt:   p.RegisteredAt,
	}
}
