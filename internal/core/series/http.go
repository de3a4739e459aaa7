// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/middleware"
	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
)

// # Definitions & Constructors

// Handler serves the /series endpoints.
type Handler struct {
	seriesService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{seriesService: service}
}

// Routes returns the /series router. Everything except reading a single
// series is reserved for creators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireArtist)
		r.Get("/mine", handler.listMine)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Put("/{id}/cover", handler.setCover)
		r.Get("/{id}/defaults", handler.defaults)
		r.Get("/{id}/analytics", handler.analytics)
	})

	return router
}

// # Request Payloads

type seriesRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Status      *string `json:"status"`
	Schedule    *string `json:"schedule"`
}

// # Handlers

/*
POST /api/v1/series.

Request:
  - Body: seriesRequest (name required)

Response:
  - 201: Series: Created series
  - 400: VALIDATION_ERROR: Missing name or unknown status/schedule
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input seriesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.seriesService.Create(request.Context(), userID, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, series)
}

// GET /api/v1/series/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.seriesService.Get(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// GET /api/v1/series/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.seriesService.ListByAuthor(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// PATCH /api/v1/series/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	var input seriesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.seriesService.Update(request.Context(), userID, id, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

// DELETE /api/v1/series/{id}. Removes every comic in the series as well.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	if err := handler.seriesService.Delete(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/series/{id}/cover.

Request:
  - Body: multipart/form-data with one "cover" file

Response:
  - 200: Series: Updated series
  - 400: VALIDATION_ERROR: No file or unsupported type
  - 413: PAYLOAD_TOO_LARGE
*/
func (handler *Handler) setCover(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploads, closeUploads, err := requestutil.Uploads(request, FieldCover)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUploads()

	if len(uploads) == 0 {
		respond.Error(writer, request, apperr.ValidationError("A cover file is required"))
		return
	}

	series, err := handler.seriesService.SetCover(request.Context(), userID, id, uploads[0])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

// GET /api/v1/series/{id}/defaults.
func (handler *Handler) defaults(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	defaults, err := handler.seriesService.Defaults(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, defaults)
}

// GET /api/v1/series/{id}/analytics.
func (handler *Handler) analytics(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	stats, err := handler.seriesService.Analytics(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// target resolves the caller and the {id} parameter, answering the error itself.
func (handler *Handler) target(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	return userID, id, true
}
