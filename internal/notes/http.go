// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cevheri/noteai/internal/platform/middleware"
)

// # Handler Implementation

// Handler implements the HTTP layer for notes, categories and tags.
//
// Every route requires a session; ownership is enforced by the [Service].
type Handler struct {
	service *Service
}

// NewHandler constructs a new notes [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// NoteRoutes returns the router mounted at /notes.
//
// # Endpoints
//   - GET    /              : List with selector precedence
//   - POST   /              : Create
//   - GET    /{id}          : Read
//   - PATCH  /{id}          : Partial update
//   - DELETE /{id}          : Soft delete (?permanent=true removes)
//   - POST   /{id}/restore  : Take out of the trash
func (handler *Handler) NoteRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listNotes)
	router.Post("/", handler.createNote)
	router.Get("/{id}", handler.getNote)
	router.Patch("/{id}", handler.updateNote)
	router.Delete("/{id}", handler.deleteNote)
	router.Post("/{id}/restore", handler.restoreNote)

	return router
}

// CategoryRoutes returns the router mounted at /categories.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Delete("/{id}", handler.deleteCategory)

	return router
}

// TagRoutes returns the router mounted at /tags.
func (handler *Handler) TagRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listTags)
	router.Post("/", handler.createTag)
	router.Delete("/{id}", handler.deleteTag)

	return router
}
