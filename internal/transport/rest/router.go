package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Words   *WordHandler
	Review  *ReviewHandler
	Quiz    *QuizHandler
	Billing *BillingHandler
	Stats   *StatsHandler
	Health  *HealthHandler
}

// NewRouter mounts all REST routes. Authentication is enforced inside
// the services via the user id on the context, so protected and public
// routes share one mux; the billing webhook authenticates itself by
// signature.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("POST /api/v1/words", h.Words.Register)
	mux.HandleFunc("GET /api/v1/words", h.Words.List)
	mux.HandleFunc("GET /api/v1/words/{id}", h.Words.Get)

	mux.HandleFunc("GET /api/v1/review/due", h.Review.Due)
	mux.HandleFunc("POST /api/v1/review/answer", h.Review.Answer)

	mux.HandleFunc("POST /api/v1/quiz/generate", h.Quiz.Generate)
	mux.HandleFunc("POST /api/v1/quiz/grade", h.Quiz.Grade)

	mux.HandleFunc("POST /api/v1/billing/checkout", h.Billing.Checkout)
	mux.HandleFunc("GET /api/v1/billing/status", h.Billing.Status)
	mux.HandleFunc("POST /api/v1/billing/webhook", h.Billing.Webhook)

	mux.HandleFunc("GET /api/v1/stats/dashboard", h.Stats.Dashboard)

	return mux
}
