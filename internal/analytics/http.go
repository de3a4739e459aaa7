// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/katha/internal/platform/constants"
	requestutil "github.com/taibuivan/katha/internal/platform/request"
	"github.com/taibuivan/katha/internal/platform/respond"
)

// # Handler Implementation

// Handler serves the creator and admin dashboards. Routes are registered onto
// routers owned by the caller, which also applies the role guards.
type Handler struct {
	service *Service
}

// NewHandler constructs a dashboard [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatorRoutes registers the creator dashboard endpoints onto router.
func (handler *Handler) CreatorRoutes(router chi.Router) {
	router.Get("/dashboard", handler.creatorDashboard)
	router.Get("/stats", handler.creatorStats)
	router.Get("/activity", handler.creatorActivity)
}

// AdminRoutes registers the admin reporting endpoints onto router.
func (handler *Handler) AdminRoutes(router chi.Router) {
	router.Get("/dashboard", handler.adminDashboard)
	router.Get("/analytics", handler.adminAnalytics)
	router.Get("/stats", handler.platformStats)
}

// # Creator Endpoints

// GET /api/v1/creator/dashboard.
func (handler *Handler) creatorDashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.CreatorDashboard(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}

// GET /api/v1/creator/stats.
func (handler *Handler) creatorStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.CreatorStats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
GET /api/v1/creator/activity.

Request:
  - limit: int (default 8, at most 15)
*/
func (handler *Handler) creatorActivity(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := requestutil.QueryInt(request, "limit", constants.CreatorFeedLimit)
	if limit < 1 || limit > 3*constants.ActivityPerKind {
		limit = constants.CreatorFeedLimit
	}

	items, err := handler.service.RecentActivity(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

// # Admin Endpoints

// GET /api/v1/admin/dashboard.
func (handler *Handler) adminDashboard(writer http.ResponseWriter, request *http.Request) {
	dashboard, err := handler.service.AdminDashboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}

/*
GET /api/v1/admin/analytics.

Request:
  - days: int (trailing window, default 30)
*/
func (handler *Handler) adminAnalytics(writer http.ResponseWriter, request *http.Request) {
	days := requestutil.QueryInt(request, "days", constants.AnalyticsDefaultDays)

	report, err := handler.service.AdminAnalytics(request.Context(), days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// GET /api/v1/admin/stats.
func (handler *Handler) platformStats(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.PlatformOverview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}
