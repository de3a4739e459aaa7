// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

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

	"github.com/taibuivan/katha/internal/core/chapter"
	"github.com/taibuivan/katha/internal/platform/ctxutil"
	"github.com/taibuivan/katha/internal/platform/sec"
)

func as(request *http.Request, principal sec.Principal) *http.Request {
	claims := &sec.AuthClaims{UserID: principal.UserID, Role: string(principal.Role), IsArtist: principal.IsArtist}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func serve(router http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func newRouter(service *chapter.Service) chi.Router {
	handler := chapter.NewHandler(service)

	router := chi.NewRouter()
	router.Mount("/comics/{id}/chapters", handler.Routes())
	router.Mount("/comments", handler.CommentRoutes())
	router.Route("/creator", handler.CreatorRoutes)
	router.Route("/admin", handler.AdminRoutes)
	return router
}

func jsonRequest(method, target, body string) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

func TestHandler_Create(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	base := "/comics/" + liveID + "/chapters/"

	recorder := serve(router, jsonRequest(http.MethodPost, base, `{"title":"One","chapter_number":1}`))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base, `{"title":"One","chapter_number":1}`), reader))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base, `{"title":"One","chapter_number":1.5}`), author))
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created chapter.Chapter
	decodeData(t, recorder, &created)
	assert.Equal(t, 1.5, created.Number)
	assert.True(t, created.IsPublished)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base, `{"title":"Two","chapter_number":"2","scheduled_publish":"2030-05-01 08:00"}`), author))
	require.Equal(t, http.StatusCreated, recorder.Code)
	decodeData(t, recorder, &created)
	assert.False(t, created.IsPublished)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base, `{"title":"Dup","chapter_number":2}`), author))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"chapter_number"`)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base, `{"title":`), author))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, "/comics/not-a-uuid/chapters/", `{}`), author))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Reading(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	published := f.create(t, liveID, "1", "")
	scheduled := f.create(t, liveID, "2", "2030-01-01 00:00")
	base := "/comics/" + liveID + "/chapters/"

	recorder := serve(router, httptest.NewRequest(http.MethodGet, base, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var list []chapter.Chapter
	decodeData(t, recorder, &list)
	require.Len(t, list, 1)
	assert.Equal(t, published.ID, list[0].ID)

	recorder = serve(router, httptest.NewRequest(http.MethodGet, base+scheduled.ID, nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = serve(router, as(httptest.NewRequest(http.MethodGet, base+scheduled.ID, nil), author))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(router, httptest.NewRequest(http.MethodGet, base+published.ID+"/pages", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, base+published.ID+"/view", nil)
	request.Header.Set("User-Agent", "reader-test")
	recorder = serve(router, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	require.Len(t, f.repo.views, 1)
	assert.Nil(t, f.repo.views[0].UserID)
	assert.Equal(t, "reader-test", f.repo.views[0].UserAgent)

	recorder = serve(router, httptest.NewRequest(http.MethodGet, "/comics/"+draftID+"/chapters/", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	created := f.create(t, liveID, "1", "2030-01-01 00:00")
	target := "/comics/" + liveID + "/chapters/" + created.ID

	recorder := serve(router, as(jsonRequest(http.MethodPatch, target, `{"is_published":true}`), author))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, f.repo.chapters[created.ID].IsPublished)

	recorder = serve(router, as(httptest.NewRequest(http.MethodDelete, target, nil), author))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, f.repo.chapters)
}

func TestHandler_Pages(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	created := f.create(t, liveID, "1", "")
	target := "/comics/" + liveID + "/chapters/" + created.ID + "/pages"

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	for _, name := range []string{"01.png", "02.jpg"} {
		part, err := form.CreateFormFile(chapter.FieldPages, name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("image"))
	}
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, target, body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	recorder := serve(router, as(request, author))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var pages []chapter.Page
	decodeData(t, recorder, &pages)
	require.Len(t, pages, 2)
	assert.Equal(t, 2, pages[1].Number)

	recorder = serve(router, as(httptest.NewRequest(http.MethodDelete, target+"/"+pages[0].ID, nil), author))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, target, `{}`), author))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_RateAndComments(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	created := f.create(t, liveID, "1", "")
	base := "/comics/" + liveID + "/chapters/" + created.ID

	recorder := serve(router, jsonRequest(http.MethodPost, base+"/rate", `{"rating":5}`))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base+"/rate", `{"rating":9}`), reader))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base+"/rate", `{"rating":5}`), reader))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"rating_count":1`)

	recorder = serve(router, as(jsonRequest(http.MethodPost, base+"/comments", `{"content":"Loved it"}`), reader))
	require.Equal(t, http.StatusCreated, recorder.Code)
	var posted chapter.Comment
	decodeData(t, recorder, &posted)

	recorder = serve(router, httptest.NewRequest(http.MethodGet, base+"/comments?page=1&limit=5", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"Loved it"`)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = serve(router, as(jsonRequest(http.MethodPatch, "/comments/"+posted.ID, `{"content":"Still love it"}`), author))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = serve(router, as(jsonRequest(http.MethodPatch, "/comments/"+posted.ID, `{"content":"Still love it"}`), reader))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"is_edited":true`)

	recorder = serve(router, as(httptest.NewRequest(http.MethodGet, "/admin/comments", nil), admin))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"chapter_title":"Chapter 1"`)

	recorder = serve(router, as(httptest.NewRequest(http.MethodDelete, "/admin/comments/"+posted.ID, nil), admin))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, f.repo.comments)
}

func TestHandler_Schedule(t *testing.T) {
	f := newFixture()
	router := newRouter(f.service)
	f.create(t, liveID, "1", "2999-12-31 23:59")

	recorder := serve(router, as(httptest.NewRequest(http.MethodGet, "/creator/schedule", nil), author))
	require.Equal(t, http.StatusOK, recorder.Code)

	var schedule chapter.Schedule
	decodeData(t, recorder, &schedule)
	assert.Len(t, schedule.Upcoming, 1)
	assert.Empty(t, schedule.Recent)
}
