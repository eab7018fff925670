package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
)

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	DueWords(ctx context.Context, input review.DueWordsInput) ([]review.DueWord, error)
	RecordAnswer(ctx context.Context, input review.RecordAnswerInput) (*domain.UserWordProgress, error)
}

// ReviewHandler serves review queue REST endpoints.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type dueWordResponse struct {
	Word     wordResponse     `json:"word"`
	Progress progressResponse `json:"progress"`
}

type recordAnswerRequest struct {
	WordID    string `json:"wordId"`
	IsCorrect bool   `json:"isCorrect"`
}

// Due handles GET /review/due. Returns the caller's review queue,
// highest importance first.
func (h *ReviewHandler) Due(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	due, err := h.svc.DueWords(r.Context(), review.DueWordsInput{Limit: limit})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	out := make([]dueWordResponse, 0, len(due))
	for _, dw := range due {
		out = append(out, dueWordResponse{
			Word:     toWordResponse(dw.Word),
			Progress: toProgressResponse(dw.Progress),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"due": out})
}

// Answer handles POST /review/answer.
func (h *ReviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req recordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	progress, err := h.svc.RecordAnswer(r.Context(), review.RecordAnswerInput{
		WordID:    wordID,
		IsCorrect: req.IsCorrect,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(progress))
}
