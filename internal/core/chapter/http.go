// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP interface for chapters, pages and comments.

# Routing Strategy

  - Reading (public): chapter list, chapter detail, pages, comments and view logging,
    mounted below /comics/{id}/chapters.
  - Reader (authenticated): rating and commenting, plus /comments/{id} edits.
  - Creator (artist flag): chapter and page management, and /creator/schedule.
  - Moderation (admin): /admin/comments.
*/
package chapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/middleware"
	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
	"github.com/taibuivan/katha/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	chapterService *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{chapterService: service}
}

// Routes returns the chapter router. It expects the comic id in the "id"
// URL parameter of the parent route.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{chapterID}", handler.get)
	router.Get("/{chapterID}/pages", handler.listPages)
	router.Get("/{chapterID}/comments", handler.listComments)
	router.Post("/{chapterID}/view", handler.view)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{chapterID}/rate", handler.rate)
		r.Post("/{chapterID}/comments", handler.comment)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireArtist)
		r.Post("/", handler.create)
		r.Patch("/{chapterID}", handler.update)
		r.Delete("/{chapterID}", handler.delete)
		r.Post("/{chapterID}/pages", handler.addPages)
		r.Delete("/{chapterID}/pages/{pageID}", handler.deletePage)
	})

	return router
}

// CommentRoutes returns the /comments router for editing and deleting a single comment.
func (handler *Handler) CommentRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Patch("/{id}", handler.editComment)
	router.Delete("/{id}", handler.deleteComment)
	return router
}

// CreatorRoutes mounts the publishing calendar on an artist-only router.
func (handler *Handler) CreatorRoutes(router chi.Router) {
	router.Get("/schedule", handler.schedule)
}

// AdminRoutes mounts comment moderation on an admin-only router.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/comments", handler.adminListComments)
	router.Delete("/comments/{id}", handler.deleteComment)
}

// # Request Payloads

type createRequest struct {
	Title            string      `json:"title"`
	Number           json.Number `json:"chapter_number"`
	ScheduledPublish string      `json:"scheduled_publish"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	IsPublished *bool   `json:"is_published"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// target resolves the comic and chapter ids of the request path.
func target(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
	comicID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	chapterID, err := requestutil.ID(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}
	return comicID, chapterID, true
}

// # Reading Endpoints

// GET /api/v1/comics/{id}/chapters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.chapterService.List(request.Context(), requestutil.Principal(request), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
GET /api/v1/comics/{id}/chapters/{chapterID}.

Response:
  - 200: Detail: Chapter with pages and the caller's rating
  - 404: NOT_FOUND: Missing, or unpublished and not the caller's
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	detail, err := handler.chapterService.Get(request.Context(), requestutil.Principal(request), comicID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// GET /api/v1/comics/{id}/chapters/{chapterID}/pages.
func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	list, err := handler.chapterService.ListPages(request.Context(), requestutil.Principal(request), comicID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

// POST /api/v1/comics/{id}/chapters/{chapterID}/view. Anonymous readers are counted too.
func (handler *Handler) view(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	err := handler.chapterService.View(request.Context(), requestutil.Principal(request), comicID, chapterID,
		middleware.RealIP(request), request.UserAgent())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/comics/{id}/chapters/{chapterID}/comments?page=&limit=.
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	list, meta, err := handler.chapterService.ListComments(request.Context(), requestutil.Principal(request), comicID, chapterID,
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

// # Reader Endpoints

// POST /api/v1/comics/{id}/chapters/{chapterID}/rate.
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.chapterService.Rate(request.Context(), requestutil.Principal(request), comicID, chapterID, input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// POST /api/v1/comics/{id}/chapters/{chapterID}/comments.
func (handler *Handler) comment(writer http.ResponseWriter, request *http.Request) {
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.chapterService.Comment(request.Context(), requestutil.Principal(request), comicID, chapterID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// PATCH /api/v1/comments/{id}.
func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.chapterService.EditComment(request.Context(), userID, id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE /api/v1/comments/{id} and DELETE /api/v1/admin/comments/{id}.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.chapterService.DeleteComment(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Creator Endpoints

/*
POST /api/v1/comics/{id}/chapters.

Request:
  - Body: {"title", "chapter_number" (number or numeric string), "scheduled_publish" ("YYYY-MM-DD HH:MM", optional)}

Response:
  - 201: Chapter: Created chapter
  - 400: VALIDATION_ERROR: Missing fields, malformed values or a duplicate number
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comicID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.chapterService.Create(request.Context(), userID, comicID, CreateInput{
		Title:            input.Title,
		Number:           input.Number.String(),
		ScheduledPublish: input.ScheduledPublish,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

// PATCH /api/v1/comics/{id}/chapters/{chapterID}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.chapterService.Update(request.Context(), userID, comicID, chapterID, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// DELETE /api/v1/comics/{id}/chapters/{chapterID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	if err := handler.chapterService.Delete(request.Context(), userID, comicID, chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/comics/{id}/chapters/{chapterID}/pages.

Request:
  - Body: multipart/form-data with one or more "pages" files, in reading order

Response:
  - 201: []Page: The appended pages
  - 413: PAYLOAD_TOO_LARGE
*/
func (handler *Handler) addPages(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploads, closeUploads, err := requestutil.Uploads(request, FieldPages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUploads()

	added, err := handler.chapterService.AddPages(request.Context(), userID, comicID, chapterID, uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, added)
}

// DELETE /api/v1/comics/{id}/chapters/{chapterID}/pages/{pageID}.
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	comicID, chapterID, ok := target(writer, request)
	if !ok {
		return
	}

	pageID, err := requestutil.ID(request, "pageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.chapterService.DeletePage(request.Context(), userID, comicID, chapterID, pageID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/creator/schedule.
func (handler *Handler) schedule(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	schedule, err := handler.chapterService.Schedule(request.Context(), userID, constants.ScheduleRecentLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, schedule)
}

// # Moderation Endpoints

// GET /api/v1/admin/comments?page=&limit=.
func (handler *Handler) adminListComments(writer http.ResponseWriter, request *http.Request) {
	list, meta, err := handler.chapterService.AdminListComments(request.Context(),
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}
