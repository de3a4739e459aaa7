// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Katha HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/api"
	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/core/series"
	"github.com/taibuivan/katha/internal/platform/config"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/migration"
	pgstore "github.com/taibuivan/katha/internal/platform/postgres"
	redisstore "github.com/taibuivan/katha/internal/platform/redis"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/platform/storage"
	"github.com/taibuivan/katha/internal/users/account"
	"github.com/taibuivan/katha/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("upload_dir", cfg.UploadDir),
	)

	// Cancelled on shutdown; stops background work such as rate-limit cleanup.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Shared Collaborators ───────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	files, err := storage.NewLocalStore(cfg.UploadDir)
	must(log, err, "initialize upload storage")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		Cache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewSessionRepository(rdb), tokens)
	accountService := account.NewService(account.NewRepository(pool), files)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), cfg.TrendingWindowDays)
	seriesService := series.NewService(series.NewRepository(pool), files, analyticsService)
	comicService := comic.NewService(comic.NewRepository(pool), files)
	chapterService := chapter.NewService(chapter.NewRepository(pool), comicService, files)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Files:     files.Handler(),
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Series:    series.NewHandler(seriesService),
		Comic:     comic.NewHandler(comicService, analyticsService),
		Chapter:   chapter.NewHandler(chapterService),
		Analytics: analytics.NewHandler(analyticsService),
	}

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger every entry of this process goes through.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "katha"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and exits if err is non-nil. Only for
// startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
