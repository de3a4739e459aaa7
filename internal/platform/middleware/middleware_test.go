// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/middleware"
	"github.com/taibuivan/katha/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

// okHandler echoes the principal id so tests can see what reached the handler.
var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write([]byte(ctxutil.ActorID(request.Context())))
})

func serve(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleMember)}}
	handler := middleware.Authenticate(verifier)(okHandler)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid", "Bearer good", http.StatusOK, "u-1"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "u-1"},
		{"bad_token", "Bearer bad", http.StatusUnauthorized, ""},
		{"bad_scheme", "Basic abc", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.header)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRequireArtist(t *testing.T) {
	cases := []struct {
		name       string
		claims     *sec.AuthClaims
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"reader", &sec.AuthClaims{UserID: "r", Role: string(sec.RoleMember)}, http.StatusForbidden},
		{"artist", &sec.AuthClaims{UserID: "a", Role: string(sec.RoleMember), IsArtist: true}, http.StatusOK},
		{"admin", &sec.AuthClaims{UserID: "x", Role: string(sec.RoleAdmin)}, http.StatusOK},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var handler http.Handler = middleware.RequireArtist(okHandler)
			if tt.claims != nil {
				handler = middleware.Authenticate(stubVerifier{claims: tt.claims})(handler)
			}

			header := ""
			if tt.claims != nil {
				header = "Bearer good"
			}
			assert.Equal(t, tt.wantStatus, serve(handler, header).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	member := stubVerifier{claims: &sec.AuthClaims{UserID: "m", Role: string(sec.RoleMember)}}
	admin := stubVerifier{claims: &sec.AuthClaims{UserID: "a", Role: string(sec.RoleAdmin)}}

	guarded := middleware.RequireRole(sec.RoleAdmin)(okHandler)

	assert.Equal(t, http.StatusUnauthorized, serve(guarded, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(middleware.Authenticate(member)(guarded), "Bearer good").Code)
	assert.Equal(t, http.StatusOK, serve(middleware.Authenticate(admin)(guarded), "Bearer good").Code)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler)

	assert.Equal(t, http.StatusOK, serve(handler, "").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "").Code)
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(okHandler)

	recorder := serve(handler, "")
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "given-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "given-id", recorder.Header().Get(constants.HeaderXRequestID))
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(ctxutil.GetLogger(context.Background()))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	)
	assert.Equal(t, http.StatusInternalServerError, serve(handler, "").Code)
}

type originPolicy struct {
	development bool
	origins     []string
}

func (policy originPolicy) IsDevelopment() bool      { return policy.development }
func (policy originPolicy) AllowedOrigins() []string { return policy.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(originPolicy{origins: []string{"https://katha.app"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://katha.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://katha.app", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))
}
