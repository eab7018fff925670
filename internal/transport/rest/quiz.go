package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/quiz"
)

// quizService defines the minimal interface needed by QuizHandler.
type quizService interface {
	Generate(ctx context.Context, input quiz.GenerateInput) (*quiz.GenerateOutput, error)
	Grade(ctx context.Context, input quiz.GradeInput) (*quiz.GradeOutput, error)
}

// QuizHandler serves quiz REST endpoints.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: logger.With("handler", "quiz")}
}

type generateRequest struct {
	Count int `json:"count"`
}

type questionResponse struct {
	WordID          string   `json:"wordId,omitempty"`
	Word            string   `json:"word,omitempty"`
	Question        string   `json:"question"`
	Translation     string   `json:"translation"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer"`
	Explanation     string   `json:"explanation"`
	PartOfSpeech    string   `json:"partOfSpeech"`
	ExampleSentence string   `json:"exampleSentence"`
	Importance      int      `json:"importance"`
	Synonyms        []string `json:"synonyms"`
}

// generateResponse reports quota exhaustion and generation failure as
// payload states, not HTTP errors. The client renders them.
type generateResponse struct {
	Status    string             `json:"status"` // "ok", "limit_reached", "failed"
	Questions []questionResponse `json:"questions"`
}

type gradeItemRequest struct {
	WordID        string   `json:"wordId,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	UserAnswer    string   `json:"userAnswer"`
	PartOfSpeech  string   `json:"partOfSpeech"`
}

type gradeRequest struct {
	Items []gradeItemRequest `json:"items"`
}

type gradeResponse struct {
	CorrectCount   int       `json:"correctCount"`
	TotalCount     int       `json:"totalCount"`
	Accuracy       float64   `json:"accuracy"`
	PredictedScore int       `json:"predictedScore"`
	WeakCategories []string  `json:"weakCategories"`
	TakenAt        time.Time `json:"takenAt"`
}

// Generate handles POST /quiz/generate.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Generate(r.Context(), quiz.GenerateInput{Count: req.Count})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := generateResponse{Status: "ok", Questions: []questionResponse{}}
	switch {
	case out.LimitReached:
		resp.Status = "limit_reached"
	case out.Failed:
		resp.Status = "failed"
	default:
		for _, q := range out.Questions {
			resp.Questions = append(resp.Questions, toQuestionResponse(q))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Grade handles POST /quiz/grade.
func (h *QuizHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := quiz.GradeInput{Items: make([]quiz.GradeItem, 0, len(req.Items))}
	for _, item := range req.Items {
		gi := quiz.GradeItem{
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			UserAnswer:    item.UserAnswer,
			PartOfSpeech:  domain.PartOfSpeech(item.PartOfSpeech),
		}
		if item.WordID != "" {
			id, err := uuid.Parse(item.WordID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid word id")
				return
			}
			gi.WordID = id
		}
		input.Items = append(input.Items, gi)
	}

	out, err := h.svc.Grade(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	weak := make([]string, 0, len(out.Result.WeakCategories))
	for _, c := range out.Result.WeakCategories {
		weak = append(weak, c.String())
	}
	writeJSON(w, http.StatusOK, gradeResponse{
		CorrectCount:   out.Result.CorrectCount,
		TotalCount:     out.Result.TotalCount,
		Accuracy:       out.Result.Accuracy,
		PredictedScore: out.Result.PredictedScore,
		WeakCategories: weak,
		TakenAt:        out.Result.CreatedAt,
	})
}

func toQuestionResponse(q domain.QuizQuestion) questionResponse {
	resp := questionResponse{
		Word:            q.Word,
		Question:        q.Question,
		Translation:     q.Translation,
		Options:         q.Options[:],
		Answer:          q.Answer,
		Explanation:     q.Explanation,
		PartOfSpeech:    q.PartOfSpeech.String(),
		ExampleSentence: q.ExampleSentence,
		Importance:      q.Importance,
		Synonyms:        q.Synonyms,
	}
	if q.WordID != uuid.Nil {
		resp.WordID = q.WordID.String()
	}
	return resp
}
