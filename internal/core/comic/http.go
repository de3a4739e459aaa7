// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP interface for the comic catalogue.

# Routing Strategy

  - Discovery (public): search, new, editor picks, rankings and single comics.
  - Reader (authenticated): rating and following.
  - Creator (artist flag): create, edit, cover upload and delete own comics.
  - Moderation (admin): mounted separately through [Handler.AdminRoutes].
*/
package comic

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/analytics"
	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/middleware"
	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
	"github.com/taibuivan/katha/internal/platform/validate"
	"github.com/taibuivan/katha/pkg/pagination"
)

// # Handler Implementation

// Rankings serves the trending and top-rated lists. [analytics.Service] satisfies it.
type Rankings interface {
	Trending(context context.Context, windowDays, limit int) ([]analytics.ComicSummary, error)
	TopRated(context context.Context, limit int) ([]analytics.ComicSummary, error)
}

// Handler implements the /comics endpoints.
type Handler struct {
	comicService *Service
	rankings     Rankings
}

// NewHandler constructs a new comic [Handler].
func NewHandler(service *Service, rankings Rankings) *Handler {
	return &Handler{comicService: service, rankings: rankings}
}

// Routes returns the /comics router. Chapter routes are mounted on it by the
// server under /{id}/chapters.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.search)
	router.Get("/new", handler.listNew)
	router.Get("/editor-picks", handler.listEditorPicks)
	router.Get("/trending", handler.trending)
	router.Get("/top-rated", handler.topRated)
	router.Get("/author/{authorID}", handler.listByAuthor)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{id}/rate", handler.rate)
		r.Post("/{id}/follow", handler.follow)
		r.Delete("/{id}/follow", handler.unfollow)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireArtist)
		r.Get("/mine", handler.listMine)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Put("/{id}/cover", handler.setCover)
	})

	return router
}

// # Request Payloads

type comicRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	Status      *string   `json:"status"`
	Schedule    *string   `json:"schedule"`
	ContentType *string   `json:"content_type"`
	Tags        *[]string `json:"tags"`
	SeriesID    *string   `json:"series_id"`
	IsPublished *bool     `json:"is_published"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// # Discovery Endpoints

// GET /api/v1/comics?q=&genre=&page=&limit=.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	list, meta, err := handler.comicService.Search(request.Context(),
		requestutil.QueryString(request, "q"),
		requestutil.QueryString(request, "genre"),
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

// GET /api/v1/comics/new.
func (handler *Handler) listNew(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.comicService.ListNew(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// GET /api/v1/comics/editor-picks.
func (handler *Handler) listEditorPicks(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.comicService.ListEditorPicks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// GET /api/v1/comics/trending?days=&limit=.
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	days := requestutil.QueryInt(request, "days", constants.TrendingWindowDays)

	validator := &validate.Validator{}
	if err := validator.Range("days", days, 1, constants.AnalyticsMaxDays).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.rankings.Trending(request.Context(), days,
		requestutil.QueryInt(request, "limit", constants.TrendingLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// GET /api/v1/comics/top-rated?limit=.
func (handler *Handler) topRated(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.rankings.TopRated(request.Context(),
		requestutil.QueryInt(request, "limit", constants.TopRatedLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// GET /api/v1/comics/author/{authorID}.
func (handler *Handler) listByAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "authorID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, meta, err := handler.comicService.ListByAuthor(request.Context(), requestutil.Principal(request), authorID,
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

// GET /api/v1/comics/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	principal := requestutil.Principal(request)

	list, meta, err := handler.comicService.ListByAuthor(request.Context(), principal, principal.UserID,
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

/*
GET /api/v1/comics/{id}.

Response:
  - 200: Detail: Comic with follower count, and the caller's follow state and rating
  - 404: NOT_FOUND: Missing, or unpublished and not the caller's
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.comicService.Get(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// # Reader Endpoints

/*
POST /api/v1/comics/{id}/rate.

Request:
  - Body: {"rating": 1-5}

Response:
  - 200: rating.Result: New counters and average
  - 400: VALIDATION_ERROR: Rating out of range
*/
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.comicService.Rate(request.Context(), requestutil.Principal(request), id, input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// POST /api/v1/comics/{id}/follow.
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.comicService.Follow(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/v1/comics/{id}/follow.
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.comicService.Unfollow(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Creator Endpoints

/*
POST /api/v1/comics.

Request:
  - Body: comicRequest (title required)

Response:
  - 201: Comic: Created comic
  - 400: VALIDATION_ERROR: Bad input
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.comicService.Create(request.Context(), userID, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

// PATCH /api/v1/comics/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := ownerTarget(writer, request)
	if !ok {
		return
	}

	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.comicService.Update(request.Context(), userID, id, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// DELETE /api/v1/comics/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := ownerTarget(writer, request)
	if !ok {
		return
	}

	if err := handler.comicService.Delete(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/comics/{id}/cover.

Request:
  - Body: multipart/form-data with one "cover" file

Response:
  - 200: Comic: Updated comic
  - 413: PAYLOAD_TOO_LARGE
*/
func (handler *Handler) setCover(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := ownerTarget(writer, request)
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

	comic, err := handler.comicService.SetCover(request.Context(), userID, id, uploads[0])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

func ownerTarget(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
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
