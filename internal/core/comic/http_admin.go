// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
	"github.com/taibuivan/katha/pkg/pagination"
)

// AdminRoutes mounts comic moderation on an admin-only router.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/comics", handler.adminList)
	router.Post("/comics/{id}/publish", handler.togglePublish)
	router.Post("/comics/{id}/editor-pick", handler.toggleEditorPick)
	router.Delete("/comics/{id}", handler.adminDelete)
}

// GET /api/v1/admin/comics?filter=published|unpublished|editor_picks&page=&limit=.
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	list, meta, err := handler.comicService.AdminList(request.Context(),
		requestutil.QueryString(request, FieldFilter),
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

// POST /api/v1/admin/comics/{id}/publish. Flips the publish flag.
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.comicService.TogglePublish(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// POST /api/v1/admin/comics/{id}/editor-pick. Flips the editor pick flag.
func (handler *Handler) toggleEditorPick(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.comicService.ToggleEditorPick(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// DELETE /api/v1/admin/comics/{id}.
func (handler *Handler) adminDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.comicService.AdminDelete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
