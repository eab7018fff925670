// Package app wires configuration, storage, services, and the HTTP
// server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordnest/wordnest-backend/internal/adapter/genai"
	"github.com/wordnest/wordnest-backend/internal/adapter/postgres"
	answerlogrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/answerlog"
	progressrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/progress"
	resultrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/result"
	subscriptionrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/subscription"
	usagerepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/usage"
	userrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/user"
	wordrepo "github.com/wordnest/wordnest-backend/internal/adapter/postgres/word"
	stripeadapter "github.com/wordnest/wordnest-backend/internal/adapter/stripe"
	jwtauth "github.com/wordnest/wordnest-backend/internal/auth"
	"github.com/wordnest/wordnest-backend/internal/config"
	authsvc "github.com/wordnest/wordnest-backend/internal/service/auth"
	billingsvc "github.com/wordnest/wordnest-backend/internal/service/billing"
	quizsvc "github.com/wordnest/wordnest-backend/internal/service/quiz"
	reviewsvc "github.com/wordnest/wordnest-backend/internal/service/review"
	statssvc "github.com/wordnest/wordnest-backend/internal/service/stats"
	wordsvc "github.com/wordnest/wordnest-backend/internal/service/word"
	"github.com/wordnest/wordnest-backend/internal/transport/middleware"
	"github.com/wordnest/wordnest-backend/internal/transport/rest"
)

const rateLimitPerMinute = 120

// Run is the application entry point. It blocks until ctx is canceled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	gen, err := genai.New(cfg.AI)
	if err != nil {
		return fmt.Errorf("init ai client: %w", err)
	}
	billingAdapter := stripeadapter.New(cfg.Billing)
	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	words := wordrepo.New(pool)
	progress := progressrepo.New(pool)
	answerLogs := answerlogrepo.New(pool)
	results := resultrepo.New(pool)
	usage := usagerepo.New(pool)
	subscriptions := subscriptionrepo.New(pool)

	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	wordService := wordsvc.NewService(logger, words, progress, gen)
	reviewService := reviewsvc.NewService(logger, progress, words, answerLogs, txm)
	quizService := quizsvc.NewService(logger, reviewService, gen, words, results, usage, subscriptions,
		cfg.AI, cfg.Quota, cfg.Quiz)
	billingService := billingsvc.NewService(logger, billingAdapter, subscriptions, users)
	statsService := statssvc.NewService(logger, progress, results, answerLogs)

	mux := rest.NewRouter(rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Words:   rest.NewWordHandler(wordService, logger),
		Review:  rest.NewReviewHandler(reviewService, logger),
		Quiz:    rest.NewQuizHandler(quizService, logger),
		Billing: rest.NewBillingHandler(billingService, logger),
		Stats:   rest.NewStatsHandler(statsService, logger),
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(rateLimitPerMinute),
		middleware.Auth(authService),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
