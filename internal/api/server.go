// Copyright (c) 2026 NotesAI. All rights reserved.

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

	"github.com/cevheri/noteai/internal/admin"
	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/config"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/middleware"
	"github.com/cevheri/noteai/internal/system/bugreport"
	"github.com/cevheri/noteai/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler, 200 whenever the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, logout and the caller's profile.
	Auth *auth.Handler

	// Notes serves notes, categories and tags.
	Notes *notes.Handler

	// BugReports accepts user submissions.
	BugReports *bugreport.Handler

	// Admin is the back-office surface, including triage and settings.
	Admin *admin.Handler
}

// Dependencies are the cross-cutting policies consulted by the middleware chain.
type Dependencies struct {
	// Resolver maps session credentials to identities.
	Resolver middleware.IdentityResolver

	// Maintenance switches the user-facing routes off for non-admins.
	Maintenance middleware.MaintenanceSwitch
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The rate limiter's sweeper lives as long as context.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(context, cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(deps.Resolver))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Operators must always be able to sign in and switch maintenance off.
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/admin", h.Admin.Routes())

		api.Group(func(user chi.Router) {
			user.Use(middleware.Maintenance(deps.Maintenance))

			user.Mount("/notes", h.Notes.NoteRoutes())
			user.Mount("/categories", h.Notes.CategoryRoutes())
			user.Mount("/tags", h.Notes.TagRoutes())
			user.Mount("/bug-reports", h.BugReports.Routes())
		})
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

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
