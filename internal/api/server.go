// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, the middleware chain and every domain
handler into a runnable [http.Server].

Architecture:

  - This package is the composition root of the HTTP transport (chi router).
  - Handlers are built in cmd/api and passed in through [Handlers].
  - Role gates for /creator and /admin live here, so a domain handler only
    registers paths.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/core/series"
	"github.com/taibuivan/katha/internal/platform/config"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/middleware"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/users/account"
	"github.com/taibuivan/katha/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handler sets of every domain.
type Handlers struct {
	// Liveness answers /health while the process is up.
	Liveness http.HandlerFunc

	// Readiness answers /ready once PostgreSQL and Redis respond.
	Readiness http.HandlerFunc

	// Files serves stored covers and pages under /uploads/.
	Files http.Handler

	Auth      *auth.Handler
	Account   *account.Handler
	Series    *series.Handler
	Comic     *comic.Handler
	Chapter   *chapter.Handler
	Analytics *analytics.Handler
}

// # Server Initialization

// NewServer builds the router with the full middleware chain and registers
// every route group.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(verifier))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Files != nil {
		r.Handle("/"+constants.UploadPrefix+"/*", h.Files)
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/series", h.Series.Routes())

		comics := h.Comic.Routes()
		comics.Mount("/{id}/chapters", h.Chapter.Routes())
		api.Mount("/comics", comics)
		api.Mount("/comments", h.Chapter.CommentRoutes())

		api.Route("/creator", func(creator chi.Router) {
			creator.Use(middleware.RequireArtist)
			h.Analytics.CreatorRoutes(creator)
			h.Chapter.CreatorRoutes(creator)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			h.Analytics.AdminRoutes(admin)
			h.Account.AdminRoutes(admin)
			h.Comic.AdminRoutes(admin)
			h.Chapter.AdminRoutes(admin)
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

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
