// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/api"
	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/core/comic"
	"github.com/taibuivan/katha/internal/core/series"
	"github.com/taibuivan/katha/internal/platform/config"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/users/account"
	"github.com/taibuivan/katha/internal/users/auth"
)

// tokenTable maps bearer tokens straight to claims.
type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

// newTestServer builds the router with handlers whose services are never
// reached: every request below is answered by middleware or path validation.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)
	verifier := tokenTable{
		"reader": {UserID: "0190a000-0000-7000-8000-000000000002", Role: string(sec.RoleMember)},
		"artist": {UserID: "0190a000-0000-7000-8000-000000000001", Role: string(sec.RoleMember), IsArtist: true},
	}

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, logger, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(nil),
		Account:   account.NewHandler(nil),
		Series:    series.NewHandler(nil),
		Comic:     comic.NewHandler(nil, nil),
		Chapter:   chapter.NewHandler(nil),
		Analytics: analytics.NewHandler(nil),
	})
	return server.Handler()
}

func TestServer_RouteGates(t *testing.T) {
	router := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"bad_token", http.MethodGet, "/health", "forged", http.StatusUnauthorized},
		{"admin_anonymous", http.MethodGet, "/api/v1/admin/stats", "", http.StatusUnauthorized},
		{"admin_as_artist", http.MethodGet, "/api/v1/admin/comments", "artist", http.StatusForbidden},
		{"creator_as_reader", http.MethodGet, "/api/v1/creator/dashboard", "reader", http.StatusForbidden},
		{"schedule_as_reader", http.MethodGet, "/api/v1/creator/schedule", "reader", http.StatusForbidden},
		{"create_comic_as_reader", http.MethodPost, "/api/v1/comics/", "reader", http.StatusForbidden},
		{"comment_edit_anonymous", http.MethodPatch, "/api/v1/comments/0190a000-0000-7000-8000-0000000000aa", "", http.StatusUnauthorized},
		{"nested_chapters_validate_comic_id", http.MethodGet, "/api/v1/comics/nope/chapters/", "", http.StatusBadRequest},
		{"unknown_route", http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}
