// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/platform/constants"
	"github.com/taibuivan/katha/internal/platform/middleware"
	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
	"github.com/taibuivan/katha/pkg/pagination"
)

// # Definitions & Constructors

// Handler serves profile and follow endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the /users router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
		r.Post("/{id}/follow", handler.follow)
		r.Delete("/{id}/follow", handler.unfollow)
	})

	router.Get("/{id}", handler.getProfile)
	router.Get("/{id}/followers", handler.listFollowers)
	router.Get("/{id}/following", handler.listFollowing)

	return router
}

// AdminRoutes mounts the user management endpoints on an admin-only router.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/users", handler.listUsers)
	router.Post("/users/{id}/artist", handler.setArtist)
}

// # Profile Endpoints

// GET /api/v1/users/me.
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PATCH /api/v1/users/me.

Request:
  - Body: multipart/form-data with optional username, bio and avatar fields

Response:
  - 200: Profile: Updated profile
  - 400: VALIDATION_ERROR: Bad input or taken username
  - 413: PAYLOAD_TOO_LARGE: Avatar over the upload limit
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	uploads, closeUploads, err := requestutil.Uploads(request, FieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUploads()

	input := UpdateProfileInput{}
	if values, ok := request.MultipartForm.Value[FieldUsername]; ok && len(values) > 0 {
		input.Username = &values[0]
	}
	if values, ok := request.MultipartForm.Value[FieldBio]; ok && len(values) > 0 {
		input.Bio = &values[0]
	}
	if len(uploads) > 0 {
		input.Avatar = &uploads[0]
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// GET /api/v1/users/{id}. Anonymous callers see the profile without is_following.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	profile, err := handler.accountService.GetProfile(request.Context(), viewerID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// # Follow Endpoints

// POST /api/v1/users/{id}/follow.
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	handler.changeFollow(writer, request, handler.accountService.Follow)
}

// DELETE /api/v1/users/{id}/follow.
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	handler.changeFollow(writer, request, handler.accountService.Unfollow)
}

func (handler *Handler) changeFollow(writer http.ResponseWriter, request *http.Request, apply func(ctx context.Context, followerID, followedID string) error) {
	followerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	followedID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := apply(request.Context(), followerID, followedID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/users/{id}/followers?page=&limit=.
func (handler *Handler) listFollowers(writer http.ResponseWriter, request *http.Request) {
	handler.listFollows(writer, request, handler.accountService.ListFollowers)
}

// GET /api/v1/users/{id}/following?page=&limit=.
func (handler *Handler) listFollowing(writer http.ResponseWriter, request *http.Request) {
	handler.listFollows(writer, request, handler.accountService.ListFollowing)
}

func (handler *Handler) listFollows(writer http.ResponseWriter, request *http.Request, list func(ctx context.Context, userID string, params pagination.Params) ([]FollowEntry, pagination.Meta, error)) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, meta, err := list(request.Context(), userID, pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

// # Admin Endpoints

// GET /api/v1/admin/users?filter=artists|readers&page=&limit=.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	list, meta, err := handler.accountService.ListUsers(request.Context(),
		requestutil.QueryString(request, "filter"),
		pagination.FromRequest(request, pagination.DefaultLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, meta)
}

type setArtistRequest struct {
	IsArtist *bool `json:"is_artist"`
}

/*
POST /api/v1/admin/users/{id}/artist.

Request:
  - Body: optional {"is_artist": bool}; an empty body toggles the flag

Response:
  - 200: auth.User: Updated account
  - 404: NOT_FOUND: Unknown user
*/
func (handler *Handler) setArtist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setArtistRequest
	if request.ContentLength > 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	user, err := handler.accountService.SetArtist(request.Context(), userID, input.IsArtist)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
