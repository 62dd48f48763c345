// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fithub/fithub/internal/core/plan"
	"github.com/fithub/fithub/internal/core/subscription"
	"github.com/fithub/fithub/internal/platform/config"
	"github.com/fithub/fithub/internal/platform/constants"
	"github.com/fithub/fithub/internal/platform/middleware"
	"github.com/fithub/fithub/internal/social/chat"
	"github.com/fithub/fithub/internal/social/follow"
	"github.com/fithub/fithub/internal/tracker"
	"github.com/fithub/fithub/internal/users/account"
	"github.com/fithub/fithub/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, login, and session lifecycle routes.
	Auth *auth.Handler

	// Account handles trainer profiles and the member directory.
	Account *account.Handler

	// Plan handles the coaching catalogue and the personalised feed.
	Plan *plan.Handler

	// Subscription handles plan purchases.
	Subscription *subscription.Handler

	// Follow handles the user-to-trainer follow graph.
	Follow *follow.Handler

	// Chat handles direct messaging.
	Chat *chat.Handler

	// Tracker handles workout logs and goals.
	Tracker *tracker.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, validator middleware.TokenValidator, metrics *middleware.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(validator))
	r.Use(middleware.CORS(cfg))
	r.Use(metrics.Instrument)
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/trainers", h.Account.TrainerRoutes())
		api.Mount("/users", h.Account.UserRoutes())
		api.Mount("/plans", h.Plan.Routes())
		api.Mount("/subscriptions", h.Subscription.Routes())
		api.Mount("/follows", h.Follow.Routes())
		api.Mount("/messages", h.Chat.Routes())
		api.Mount("/workouts", h.Tracker.WorkoutRoutes())
		api.Mount("/goals", h.Tracker.GoalRoutes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
