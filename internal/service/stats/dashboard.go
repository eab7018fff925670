package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/internal/service/review"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

const (
	trendLength        = 10
	recentAccuracyDays = 7
)

// TrendPoint is one historical test result on the dashboard chart.
type TrendPoint struct {
	Accuracy       float64
	PredictedScore int
	TakenAt        time.Time
}

// Dashboard is the aggregate view for one user.
type Dashboard struct {
	PredictedScore int  // latest, or the default prior when no tests exist
	HasResults     bool // false when PredictedScore is the default prior
	TotalWords     int
	DueToday       int
	Trend          []TrendPoint // newest first
	RecentCorrect  int          // answers over the recent window
	RecentTotal    int
}

// GetDashboard aggregates the calling user's progress into dashboard
// numbers. All reads, no writes.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	now := s.clock()

	total, err := s.progress.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.GetDashboard count words: %w", err)
	}

	ledger, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.GetDashboard list progress: %w", err)
	}
	due := 0
	for _, p := range ledger {
		if review.IsDue(p.CorrectCount, p.LastReviewDate(), now) {
			due++
		}
	}

	results, err := s.results.ListByUser(ctx, userID, trendLength, 0)
	if err != nil {
		return nil, fmt.Errorf("stats.GetDashboard list results: %w", err)
	}
	trend := make([]TrendPoint, 0, len(results))
	for _, r := range results {
		trend = append(trend, TrendPoint{
			Accuracy:       r.Accuracy,
			PredictedScore: r.PredictedScore,
			TakenAt:        r.CreatedAt,
		})
	}

	correct, answered, err := s.logs.CountByUserSince(ctx, userID, now.AddDate(0, 0, -recentAccuracyDays))
	if err != nil {
		return nil, fmt.Errorf("stats.GetDashboard count answers: %w", err)
	}

	d := &Dashboard{
		PredictedScore: domain.DefaultPriorScore,
		TotalWords:     total,
		DueToday:       due,
		Trend:          trend,
		RecentCorrect:  correct,
		RecentTotal:    answered,
	}
	if len(results) > 0 {
		d.PredictedScore = results[0].PredictedScore
		d.HasResults = true
	}
	return d, nil
}
