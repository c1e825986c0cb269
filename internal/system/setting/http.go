// Copyright (c) 2026 NotesAI. All rights reserved.

package setting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/respond"
)

// Handler implements the HTTP layer for settings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new settings [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /admin/settings. The admin gate is
// applied by the parent router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Put("/", handler.replace)

	return router
}

// GET /api/v1/admin/settings.
func (handler *Handler) get(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.Current())
}

/*
PUT /api/v1/admin/settings.

Description: Replaces the whole document. Omitted fields take their default
value, not their current one.

Response:
  - 200: Settings
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	input := Defaults()
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.Replace(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}
