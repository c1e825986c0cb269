// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/validate"
)

// # Note Lookups

// ListNotes returns the caller's notes selected by filter.
func (service *Service) ListNotes(context context.Context, userID string, filter Filter) ([]*Note, error) {
	return service.noteRepository.List(context, userID, filter)
}

/*
GetNote loads a note and verifies the caller owns it.

Parameters:
  - context: context.Context
  - userID: string (Caller)
  - id: int64

Returns:
  - *Note: The note
  - error: NotFound, or Forbidden when another user owns it
*/
func (service *Service) GetNote(context context.Context, userID string, id int64) (*Note, error) {
	note, err := service.noteRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(note.UserID, userID, "note"); err != nil {
		return nil, err
	}
	return note, nil
}

// # Note Management

// NoteInput carries the fields of a new note. Everything is optional.
type NoteInput struct {
	Title      string
	Content    string
	CategoryID *int64
	Tags       []int64
}

/*
CreateNote creates a note for the caller.

Description: A blank title becomes "Untitled". Category and tags must belong
to the caller. The owner's quota counts every stored note, trash included.

Parameters:
  - context: context.Context
  - userID: string
  - input: NoteInput

Returns:
  - *Note: The created note
  - error: ValidationError, Unprocessable (NOTE_LIMIT_REACHED) or storage errors
*/
func (service *Service) CreateNote(context context.Context, userID string, input NoteInput) (*Note, error) {

	// 1. Defaults and input rules
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = constants.DefaultNoteTitle
	}
	validator := (&validate.Validator{}).
		MaxLen(FieldTitle, title, MaxTitleLength).
		MaxLen(FieldContent, input.Content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. References must be owned by the caller
	tags := dedupe(input.Tags)
	if err := service.verifyReferences(context, userID, input.CategoryID, tags); err != nil {
		return nil, err
	}

	// 3. Quota
	if limit := service.quota.MaxNotesPerUser(context); limit > 0 {
		count, err := service.noteRepository.CountByOwner(context, userID)
		if err != nil {
			return nil, fmt.Errorf("notes_service_quota_failed: %w", err)
		}
		if count >= limit {
			return nil, apperr.Unprocessable(fmt.Sprintf("Note limit of %d reached", limit)).WithCode(CodeNoteLimitReached)
		}
	}

	note, err := service.noteRepository.Create(context, NoteDraft{
		UserID:     userID,
		Title:      title,
		Content:    input.Content,
		CategoryID: input.CategoryID,
		Tags:       tags,
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "note_created",
		slog.Int64("note_id", note.ID),
		slog.String("user_id", userID),
	)
	return note, nil
}

/*
UpdateNote applies a partial update to a note the caller owns.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64
  - patch: NotePatch

Returns:
  - *Note: The updated note
  - error: NotFound, Forbidden, ValidationError or storage errors
*/
func (service *Service) UpdateNote(context context.Context, userID string, id int64, patch NotePatch) (*Note, error) {
	if _, err := service.GetNote(context, userID, id); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
		patch.Title = &title
	}
	if patch.Content != nil {
		validator.MaxLen(FieldContent, *patch.Content, MaxContentLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var categoryID *int64
	if patch.CategoryID.Set {
		categoryID = patch.CategoryID.Ptr()
	}
	var tags []int64
	if patch.Tags != nil {
		tags = dedupe(*patch.Tags)
		patch.Tags = &tags
	}
	if err := service.verifyReferences(context, userID, categoryID, tags); err != nil {
		return nil, err
	}

	return service.noteRepository.Update(context, id, patch)
}

/*
DeleteNote soft-deletes a note, or removes it when permanent.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64
  - permanent: bool

Returns:
  - error: NotFound, Forbidden or storage errors
*/
func (service *Service) DeleteNote(context context.Context, userID string, id int64, permanent bool) error {
	if _, err := service.GetNote(context, userID, id); err != nil {
		return err
	}

	existed, err := service.noteRepository.Delete(context, id, permanent)
	if err != nil {
		return err
	}
	if !existed {
		return apperr.NotFound("Note")
	}

	ctxutil.GetLogger(context).InfoContext(context, "note_deleted",
		slog.Int64("note_id", id),
		slog.Bool("permanent", permanent),
	)
	return nil
}

// RestoreNote takes a note out of the trash.
func (service *Service) RestoreNote(context context.Context, userID string, id int64) (*Note, error) {
	restored := false
	return service.UpdateNote(context, userID, id, NotePatch{IsDeleted: &restored})
}

// # Statistics

// CountNotes counts every stored note.
func (service *Service) CountNotes(context context.Context) (int, error) {
	return service.noteRepository.Count(context)
}

// CountNotesCreatedSince counts notes created at or after since.
func (service *Service) CountNotesCreatedSince(context context.Context, since time.Time) (int, error) {
	return service.noteRepository.CountCreatedSince(context, since)
}

// # Helpers

// verifyReferences rejects a category or tags the caller does not own.
func (service *Service) verifyReferences(context context.Context, userID string, categoryID *int64, tags []int64) error {
	validator := &validate.Validator{}

	if categoryID != nil {
		category, err := service.categoryRepository.FindByID(context, *categoryID)
		switch {
		case apperr.HasCode(err, apperr.CodeNotFound):
			validator.Custom(FieldCategoryID, true, fmt.Sprintf("Unknown category %d", *categoryID))
		case err != nil:
			return err
		default:
			validator.Custom(FieldCategoryID, category.UserID != userID, fmt.Sprintf("Unknown category %d", *categoryID))
		}
	}

	for _, tagID := range tags {
		tag, err := service.tagRepository.FindByID(context, tagID)
		switch {
		case apperr.HasCode(err, apperr.CodeNotFound):
			validator.Custom(FieldTags, true, fmt.Sprintf("Unknown tag %d", tagID))
		case err != nil:
			return err
		default:
			validator.Custom(FieldTags, tag.UserID != userID, fmt.Sprintf("Unknown tag %d", tagID))
		}
	}

	return validator.Err()
}

// dedupe drops repeated ids, keeping first occurrences. The result is never nil.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
