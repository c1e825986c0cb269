// Copyright (c) 2026 NotesAI. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cevheri/noteai/internal/platform/middleware"
	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/respond"
	"github.com/cevheri/noteai/internal/system/bugreport"
	"github.com/cevheri/noteai/internal/system/setting"
	"github.com/cevheri/noteai/internal/users/auth"
	"github.com/cevheri/noteai/pkg/pagination"
)

// # Handler Implementation

// Handler implements the /admin HTTP surface.
type Handler struct {
	service    *Service
	bugReports *bugreport.Handler
	settings   *setting.Handler
}

// NewHandler constructs a new admin [Handler] that also mounts the bug report
// triage and settings sub-routers.
func NewHandler(service *Service, bugReports *bugreport.Handler, settings *setting.Handler) *Handler {
	return &Handler{service: service, bugReports: bugReports, settings: settings}
}

// Routes returns the router mounted at /admin.
//
// Every endpoint requires {admin, super_admin}; other roles receive 403
// ADMIN_ACCESS_REQUIRED.
//
// # Endpoints
//   - GET    /users         : Paginated, searchable user list
//   - PATCH  /users/{id}    : Role update
//   - DELETE /users/{id}    : Delete account and owned data
//   - /bug-reports          : Triage
//   - /settings             : Application settings
//   - GET    /stats         : Dashboard summary
//   - GET    /analytics     : Growth and histograms
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/users", handler.listUsers)
	router.Patch("/users/{id}", handler.updateRole)
	router.Delete("/users/{id}", handler.deleteUser)

	router.Mount("/bug-reports", handler.bugReports.AdminRoutes())
	router.Mount("/settings", handler.settings.Routes())

	router.Get("/stats", handler.stats)
	router.Get("/analytics", handler.analytics)

	return router
}

type roleRequest struct {
	Role string `json:"role"`
}

// # User Endpoints

/*
GET /api/v1/admin/users.

Request:
  - search: string (name or email, case-insensitive)
  - limit: int (1..100, default 50)
  - offset: int (>= 0)

Response:
  - 200: []User with pagination meta
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	users, total, err := handler.service.ListUsers(request.Context(), auth.UserQuery{
		Search: request.URL.Query().Get("search"),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params, total))
}

/*
PATCH /api/v1/admin/users/{id}.

Request:
  - Body: {"role": "user" | "admin" | "super_admin"}

Response:
  - 200: User
  - 400: INVALID_ROLE
  - 404: NOT_FOUND
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateRole(request.Context(), identity, requestutil.Param(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/admin/users/{id}.

Response:
  - 200: The deleted User
  - 403: SELF_DELETE_NOT_ALLOWED
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.DeleteUser(request.Context(), identity, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Dashboard Endpoints

// GET /api/v1/admin/stats.
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

// GET /api/v1/admin/analytics.
func (handler *Handler) analytics(writer http.ResponseWriter, request *http.Request) {
	analytics, err := handler.service.Analytics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, analytics)
}
