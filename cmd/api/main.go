// Copyright (c) 2026 NotesAI. All rights reserved.

// Command api is the entry point for the NotesAI HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Open the relational stores: PostgreSQL (with migrations) or memory.
//  4. Open the session store: Redis, PostgreSQL or memory.
//  5. Load application settings and ensure the bootstrap admin.
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

	"github.com/cevheri/noteai/internal/admin"
	"github.com/cevheri/noteai/internal/api"
	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/config"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/migration"
	pgstore "github.com/cevheri/noteai/internal/platform/postgres"
	redisstore "github.com/cevheri/noteai/internal/platform/redis"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/system/bugreport"
	"github.com/cevheri/noteai/internal/system/setting"
	"github.com/cevheri/noteai/internal/users/auth"
)

// repositories groups the storage backends selected by configuration.
type repositories struct {
	users      auth.UserRepository
	sessions   auth.SessionRepository
	notes      notes.NoteRepository
	categories notes.CategoryRepository
	tags       notes.TagRepository
	bugReports bugreport.Repository
	settings   setting.Repository
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var (
		repos  repositories
		health api.HealthDependencies
	)

	// ── 3. Relational Storage ─────────────────────────────────────────────
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
		repos.users = auth.NewUserRepository(pool)
		repos.sessions = auth.NewSessionRepository(pool)
		repos.notes = notes.NewPostgresNoteRepository(pool)
		repos.categories = notes.NewPostgresCategoryRepository(pool)
		repos.tags = notes.NewPostgresTagRepository(pool)
		repos.bugReports = bugreport.NewPostgresRepository(pool)
		repos.settings = setting.NewPostgresRepository(pool)

	default:
		store := notes.NewMemoryStore()
		repos.users = auth.NewMemoryUserRepository()
		repos.sessions = auth.NewMemorySessionRepository()
		repos.notes = store.Notes()
		repos.categories = store.Categories()
		repos.tags = store.Tags()
		repos.bugReports = bugreport.NewMemoryRepository()
		repos.settings = setting.NewMemoryRepository()
		log.Warn("memory_storage_in_use", slog.String("hint", "data is lost on restart"))
	}

	// ── 4. Session Storage ────────────────────────────────────────────────
	if cfg.SessionStore == config.DriverRedis {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
		repos.sessions = auth.NewRedisSessionRepository(rdb)
	}

	// ── 5. Settings & Bootstrap ───────────────────────────────────────────
	settingService := setting.NewService(repos.settings)
	_, err = settingService.Load(startupCtx)
	must(log, err, "load settings")

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize session tokens")

	authService := auth.NewService(repos.users, repos.sessions, tokens, cfg.SessionTTL).
		WithRegistrationPolicy(settingService)

	if cfg.BootstrapAdminEmail != "" {
		_, err := authService.EnsureBootstrapAdmin(startupCtx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName)
		must(log, err, "ensure bootstrap admin")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	noteService := notes.NewService(repos.notes, repos.categories, repos.tags).WithQuotaPolicy(settingService)
	bugReportService := bugreport.NewService(repos.bugReports)
	adminService := admin.NewService(repos.users, repos.sessions, noteService, bugReportService).
		WithAdminSelfDeleteBlocked(cfg.BlockAdminSelfDelete)

	bugReportHandler := bugreport.NewHandler(bugReportService)
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, cfg.CookieSecure),
		Notes:      notes.NewHandler(noteService),
		BugReports: bugReportHandler,
		Admin:      admin.NewHandler(adminService, bugReportHandler, setting.NewHandler(settingService)),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Dependencies{
		Resolver:    authService,
		Maintenance: settingService,
	}, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the process-wide JSON logger at level.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "notesai"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
