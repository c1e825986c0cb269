// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cevheri/noteai/internal/platform/middleware"
	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/respond"
	"github.com/cevheri/noteai/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for bug reports.
type Handler struct {
	service *Service
}

// NewHandler constructs a new bug report [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the user-facing router mounted at /bug-reports.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.submit)

	return router
}

// AdminRoutes returns the triage router mounted at /admin/bug-reports.
//
// The admin gate is applied by the parent router.
//
// # Endpoints
//   - GET    /      : Filtered list
//   - PATCH  /{id}  : Status update
//   - DELETE /{id}  : Remove
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Patch("/{id}", handler.updateStatus)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type submitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	URL         string `json:"url"`
	UserAgent   string `json:"userAgent"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// # Endpoints

/*
POST /api/v1/bug-reports.

Request:
  - Body: submitRequest (userAgent falls back to the User-Agent header)

Response:
  - 201: BugReport
  - 400: VALIDATION_ERROR, INVALID_TYPE, INVALID_SEVERITY
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userAgent := input.UserAgent
	if strings.TrimSpace(userAgent) == "" {
		userAgent = request.UserAgent()
	}

	report, err := handler.service.Submit(request.Context(), identity, SubmitInput{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Severity:    input.Severity,
		URL:         input.URL,
		UserAgent:   userAgent,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

/*
GET /api/v1/admin/bug-reports.

Request:
  - status: string (optional)
  - severity: string (optional)
  - limit: int (1..100, default 50)
  - offset: int (>= 0)

Response:
  - 200: []BugReport with pagination meta
  - 400: VALIDATION_ERROR, INVALID_STATUS, INVALID_SEVERITY
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := Query{Limit: params.Limit, Offset: params.Offset}
	if raw := request.URL.Query().Get("status"); raw != "" {
		if query.Status, err = ParseStatus(raw); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}
	if raw := request.URL.Query().Get("severity"); raw != "" {
		if query.Severity, err = ParseSeverity(raw); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	reports, total, err := handler.service.List(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(params, total))
}

// PATCH /api/v1/admin/bug-reports/{id}.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.UpdateStatus(request.Context(), id, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// DELETE /api/v1/admin/bug-reports/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
