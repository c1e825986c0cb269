// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"net/http"

	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/respond"
	"github.com/cevheri/noteai/pkg/convert"
	"github.com/cevheri/noteai/pkg/nullable"
)

// # Request Payloads

type createNoteRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *int64  `json:"categoryId"`
	Tags       []int64 `json:"tags"`
}

type updateNoteRequest struct {
	Title      *string               `json:"title"`
	Content    *string               `json:"content"`
	CategoryID nullable.Value[int64] `json:"categoryId"`
	Tags       *[]int64              `json:"tags"`
	IsFavorite *bool                 `json:"isFavorite"`
	IsArchived *bool                 `json:"isArchived"`
	IsDeleted  *bool                 `json:"isDeleted"`
}

// # Note Endpoints

/*
GET /api/v1/notes.

Description: Lists the caller's notes. At most one selector applies, in
this order: search, filter, categoryId, tagId, otherwise all live notes.

Request:
  - search: string (Case-insensitive title/content match)
  - filter: string (favorites, recent, archived, trash)
  - categoryId: int
  - tagId: int
  - limit: int (recent only, 1..100, default 10)

Response:
  - 200: []Note
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) listNotes(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := ParseFilter(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notes, err := handler.service.ListNotes(request.Context(), userID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notes)
}

/*
POST /api/v1/notes.

Request:
  - Body: createNoteRequest (all optional; title defaults to "Untitled")

Response:
  - 201: Note
  - 400: VALIDATION_ERROR (including foreign category/tag ids)
  - 422: NOTE_LIMIT_REACHED
*/
func (handler *Handler) createNote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createNoteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.CreateNote(request.Context(), userID, NoteInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
		Tags:       input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, note)
}

/*
GET /api/v1/notes/{id}.

Response:
  - 200: Note
  - 400: VALIDATION_ERROR (non-numeric id)
  - 403: FORBIDDEN (owned by someone else)
  - 404: NOT_FOUND
*/
func (handler *Handler) getNote(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	note, err := handler.service.GetNote(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

/*
PATCH /api/v1/notes/{id}.

Description: Shallow merge. "categoryId": null clears the category.

Response:
  - 200: Note
*/
func (handler *Handler) updateNote(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	var input updateNoteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.UpdateNote(request.Context(), userID, id, NotePatch{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
		Tags:       input.Tags,
		IsFavorite: input.IsFavorite,
		IsArchived: input.IsArchived,
		IsDeleted:  input.IsDeleted,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

/*
DELETE /api/v1/notes/{id}.

Request:
  - permanent: bool (true removes the note; anything else moves it to the trash)

Response:
  - 204: No Content
*/
func (handler *Handler) deleteNote(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	permanent := convert.ToBool(request.URL.Query().Get("permanent"))
	if err := handler.service.DeleteNote(request.Context(), userID, id, permanent); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/notes/{id}/restore.

Response:
  - 200: Note (isDeleted=false)
*/
func (handler *Handler) restoreNote(writer http.ResponseWriter, request *http.Request) {
	userID, id, ok := handler.target(writer, request)
	if !ok {
		return
	}

	note, err := handler.service.RestoreNote(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

// target extracts the caller and the numeric {id} path value, answering the
// request itself on failure.
func (handler *Handler) target(writer http.ResponseWriter, request *http.Request) (string, int64, bool) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return "", 0, false
	}

	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return "", 0, false
	}

	return userID, id, true
}
