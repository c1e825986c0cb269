// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"net/http"

	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/respond"
)

// # Request Payloads

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// # Category Endpoints

// GET /api/v1/categories.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.service.ListCategories(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
POST /api/v1/categories.

Request:
  - Body: createCategoryRequest (name required; color "#6366f1" and icon "folder" by default)

Response:
  - 201: Category
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), userID, CategoryInput{
		Name:  input.Name,
		Color: input.Color,
		Icon:  input.Icon,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{id}.

Description: Notes in the category survive with a null categoryId.

Response:
  - 204: No Content
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Tag Endpoints

// GET /api/v1/tags.
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.ListTags(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

/*
POST /api/v1/tags.

Response:
  - 201: Tag
  - 400: VALIDATION_ERROR
  - 409: CONFLICT (same name for the same owner)
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.CreateTag(request.Context(), userID, TagInput{
		Name:  input.Name,
		Color: input.Color,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

/*
DELETE /api/v1/tags/{id}.

Description: The tag is pruned from every note that carried it.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	if err := handler.service.DeleteTag(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
