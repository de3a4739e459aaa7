// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
	"github.com/taibuivan/katha/internal/users/account"
)

func asUser(request *http.Request, userID string, role sec.UserRole) *http.Request {
	claims := &sec.AuthClaims{UserID: userID, Role: string(role)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_GetProfile(t *testing.T) {
	svc, repo, _ := newService()
	repo.follows = []followPair{{ravID, miraID}}
	router := account.NewHandler(svc).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+miraID, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data account.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "mira", body.Data.Username)
	assert.Equal(t, 1, body.Data.FollowerCount)
	assert.Empty(t, body.Data.Email)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_FollowRequiresAuth(t *testing.T) {
	svc, repo, _ := newService()
	router := account.NewHandler(svc).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/"+miraID+"/follow", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	request := asUser(httptest.NewRequest(http.MethodPost, "/"+miraID+"/follow", nil), ravID, sec.RoleMember)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Len(t, repo.follows, 1)

	recorder = httptest.NewRecorder()
	request = asUser(httptest.NewRequest(http.MethodPost, "/"+ravID+"/follow", nil), ravID, sec.RoleMember)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_UpdateMe(t *testing.T) {
	svc, _, files := newService()
	router := account.NewHandler(svc).Routes()

	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)
	require.NoError(t, form.WriteField("bio", "hello"))
	part, err := form.CreateFormFile("avatar", "face.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPatch, "/me", &buffer)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asUser(request, miraID, sec.RoleMember))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Data account.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "hello", body.Data.Bio)
	assert.Equal(t, "mira@example.com", body.Data.Email)
	assert.Equal(t, []string{"uploads/face.png"}, files.Saved)
}

func TestHandler_AdminSetArtist(t *testing.T) {
	svc, _, _ := newService()
	router := chi.NewRouter()
	account.NewHandler(svc).AdminRoutes(router)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/users/"+ravID+"/artist", strings.NewReader(`{"is_artist":true}`))
	router.ServeHTTP(recorder, asUser(request, miraID, sec.RoleAdmin))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_artist":true`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users?filter=readers", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":0`)
}
