// Copyright (c) 2026 Niramaya. All rights reserved.

// Command api is the entry point for the Niramaya HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Select the backend mode from configuration presence.
//  4. Live mode: connect PostgreSQL + Redis, run migrations.
//     Local mode: open the durable document store and seed fixtures.
//  5. Bootstrap the session authority.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/niramaya/api/internal/admin"
	"github.com/niramaya/api/internal/api"
	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/internal/care/crisis"
	"github.com/niramaya/api/internal/care/journal"
	"github.com/niramaya/api/internal/care/mood"
	"github.com/niramaya/api/internal/care/provider"
	"github.com/niramaya/api/internal/platform/config"
	"github.com/niramaya/api/internal/platform/constants"
	"github.com/niramaya/api/internal/platform/localstore"
	"github.com/niramaya/api/internal/platform/middleware"
	"github.com/niramaya/api/internal/platform/migration"
	pgstore "github.com/niramaya/api/internal/platform/postgres"
	redisstore "github.com/niramaya/api/internal/platform/redis"
	"github.com/niramaya/api/internal/platform/sec"
	"github.com/niramaya/api/internal/social/community"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "niramaya"))
	slog.SetDefault(log)

	log.Info("[Niramaya] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "niramaya"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("mode", string(cfg.Mode())),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifetime context for background workers (rate limiter cleanup,
	// session change listener, expired session sweeper).
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	var (
		handlers api.Handlers
		verifier middleware.TokenVerifier
	)

	switch cfg.Mode() {
	case config.ModeLive:
		// ── 3a. PostgreSQL ────────────────────────────────────────────────
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		// ── 4a. Redis ─────────────────────────────────────────────────────
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		// ── 5a. Migrations ────────────────────────────────────────────────
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		// ── 6a. Session Authority ─────────────────────────────────────────
		tokens := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
		backend := auth.NewLiveBackend(pool, rdb, tokens)
		authority := auth.NewAuthority(backend, log,
			auth.WithFixtureRecovery(auth.FixtureCredentials()))
		must(log, authority.Bootstrap(runCtx), "bootstrap session authority")
		// Tokens are checked against the revocation cache as well as the
		// signature, so sign-out invalidates them immediately.
		verifier = auth.NewLiveVerifier(tokens, backend)

		go sweepExpiredSessions(runCtx, backend, log)

		// ── 7a. Health handlers (wired with real dependency checkers) ─────
		liveness, readiness := api.NewHealthHandlers([]api.HealthCheck{
			{Name: "postgres", Ping: func() error {
				return pgstore.Ping(context.Background(), pool)
			}},
			{Name: "redis", Ping: func() error {
				return redisstore.Ping(context.Background(), rdb)
			}},
		}, log)

		// ── 8a. Domain Wiring ─────────────────────────────────────────────
		moodService := mood.NewService(mood.NewPostgresRepository(pool), log)
		journalService := journal.NewService(journal.NewPostgresRepository(pool), log)
		crisisService := crisis.NewService(
			crisis.NewPostgresRepository(pool),
			crisis.NewPostgresProfileFlagger(pool),
			log,
		)
		providerService := provider.NewService(provider.NewPostgresRepository(pool), log)
		communityService := community.NewService(community.NewPostgresRepository(pool), log)
		adminService := admin.NewService(admin.NewPostgresRepository(pool))

		handlers = api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authority, backend),
			Mood:      mood.NewHandler(moodService),
			Journal:   journal.NewHandler(journalService),
			Crisis:    crisis.NewHandler(crisisService),
			Provider:  provider.NewHandler(providerService, journalService, moodService, crisisService),
			Community: community.NewHandler(communityService),
			Admin:     admin.NewHandler(adminService),
		}

	case config.ModeLocal:
		// ── 3b. Document Store ────────────────────────────────────────────
		store, err := localstore.Open(cfg.LocalDataDir)
		must(log, err, "open local store")

		// ── 4b. Session Authority ─────────────────────────────────────────
		backend := auth.NewLocalBackend(store)
		must(log, backend.SeedFixtures(), "seed fixture accounts")

		authority := auth.NewAuthority(backend, log)
		must(log, authority.Bootstrap(runCtx), "bootstrap session authority")
		verifier = backend

		log.Warn("local_mode_active",
			slog.String("data_dir", cfg.LocalDataDir),
			slog.String("note", "plaintext fixture credentials, development only"))

		// ── 5b. Health handlers ───────────────────────────────────────────
		liveness, readiness := api.NewHealthHandlers([]api.HealthCheck{
			{Name: "localstore", Ping: func() error {
				var probe map[string]any
				_, err := store.Get(constants.LocalKeyCredentials, &probe)
				return err
			}},
		}, log)

		// Local mode serves the session contract and the hotline directory.
		// The wellness domain needs the relational backend.
		handlers = api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authority, backend),
			Crisis:    crisis.NewLocalHandler(),
		}
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(runCtx, cfg, log, verifier, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// sweepExpiredSessions periodically clears expired session rows so the
// admin active-session count stays honest.
func sweepExpiredSessions(ctx context.Context, backend *auth.LiveBackend, log *slog.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := backend.DeleteExpiredSessions(ctx); err != nil {
				log.Error("session_sweep_failed", slog.Any("error", err))
			}
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
