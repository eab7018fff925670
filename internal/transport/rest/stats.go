package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordnest/wordnest-backend/internal/service/stats"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	GetDashboard(ctx context.Context) (*stats.Dashboard, error)
}

// StatsHandler serves the dashboard endpoint.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type trendPointResponse struct {
	Accuracy       float64   `json:"accuracy"`
	PredictedScore int       `json:"predictedScore"`
	TakenAt        time.Time `json:"takenAt"`
}

type dashboardResponse struct {
	PredictedScore int                  `json:"predictedScore"`
	HasResults     bool                 `json:"hasResults"`
	TotalWords     int                  `json:"totalWords"`
	DueToday       int                  `json:"dueToday"`
	Trend          []trendPointResponse `json:"trend"`
	RecentCorrect  int                  `json:"recentCorrect"`
	RecentTotal    int                  `json:"recentTotal"`
}

// Dashboard handles GET /stats/dashboard.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	trend := make([]trendPointResponse, 0, len(d.Trend))
	for _, p := range d.Trend {
		trend = append(trend, trendPointResponse{
			Accuracy:       p.Accuracy,
			PredictedScore: p.PredictedScore,
			TakenAt:        p.TakenAt,
		})
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		PredictedScore: d.PredictedScore,
		HasResults:     d.HasResults,
		TotalWords:     d.TotalWords,
		DueToday:       d.DueToday,
		Trend:          trend,
		RecentCorrect:  d.RecentCorrect,
		RecentTotal:    d.RecentTotal,
	})
}
