// Copyright (c) 2026 Niramaya. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The mounted surface depends on the backend mode: local mode serves only the
session contract and the crisis hotline directory, while live mode mounts
the full wellness domain.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/niramaya/api/internal/admin"
	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/care/crisis"
	"github.com/niramaya/api/internal/care/journal"
	"github.com/niramaya/api/internal/care/mood"
	"github.com/niramaya/api/internal/care/provider"
	"github.com/niramaya/api/internal/platform/config"
	"github.com/niramaya/api/internal/platform/constants"
	"github.com/niramaya/api/internal/platform/middleware"
	"github.com/niramaya/api/internal/social/community"
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
// Auth and the health probes are always present. The domain handlers are
// nil in local mode, and any nil handler's routes are simply not mounted.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session contract (register, login, logout, snapshot).
	Auth *auth.Handler

	// Mood handles daily mood check-ins and trends.
	Mood *mood.Handler

	// Journal handles private journal entries.
	Journal *journal.Handler

	// Crisis handles crisis check-ins and the hotline directory.
	Crisis *crisis.Handler

	// Provider handles care-provider links and the provider dashboard.
	Provider *provider.Handler

	// Community handles peer-support communities, posts, and comments.
	Community *community.Handler

	// Admin handles platform-level counts.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		if h.Crisis != nil {
			// The hotline directory stays outside every gate.
			api.Route("/crisis", func(router chi.Router) {
				h.Crisis.RegisterPublicRoutes(router)
				if h.Crisis.CanCheckIn() {
					router.Group(func(gated chi.Router) {
						gated.Use(middleware.RequireSession())
						h.Crisis.RegisterRoutes(gated)
					})
				}
			})
		}

		api.Group(func(gated chi.Router) {
			gated.Use(middleware.RequireSession())

			if h.Mood != nil {
				gated.Route("/moods", h.Mood.RegisterRoutes)
			}
			if h.Journal != nil {
				gated.Route("/journal", h.Journal.RegisterRoutes)
			}
			if h.Community != nil {
				gated.Route("/communities", h.Community.RegisterRoutes)
			}
			if h.Provider != nil {
				gated.Route("/links", h.Provider.RegisterClientRoutes)
			}
		})

		if h.Provider != nil {
			api.Group(func(gated chi.Router) {
				gated.Use(middleware.RequireRole(auth.RoleProvider))
				gated.Route("/provider", h.Provider.RegisterProviderRoutes)
			})
		}

		if h.Admin != nil {
			api.Group(func(gated chi.Router) {
				gated.Use(middleware.RequireRole(auth.RoleAdmin))
				gated.Route("/admin", h.Admin.RegisterRoutes)
			})
		}
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
