// Copyright (c) 2026 NotesAI. All rights reserved.

package notes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/pkg/nullable"
	"github.com/cevheri/noteai/pkg/pointer"
)

type fixedQuota int

func (q fixedQuota) MaxNotesPerUser(context.Context) int { return int(q) }

func newService() *notes.Service {
	store := notes.NewMemoryStore()
	return notes.NewService(store.Notes(), store.Categories(), store.Tags())
}

func TestService_CreateNoteDefaults(t *testing.T) {
	ctx := context.Background()
	service := newService()

	note, err := service.CreateNote(ctx, "alice", notes.NoteInput{Title: "   "})
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultNoteTitle, note.Title)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, []int64{}, note.Tags)
	assert.Equal(t, "alice", note.UserID)
}

func TestService_Ownership(t *testing.T) {
	ctx := context.Background()
	service := newService()

	note, err := service.CreateNote(ctx, "alice", notes.NoteInput{Title: "Private"})
	require.NoError(t, err)

	_, err = service.GetNote(ctx, "bob", note.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.UpdateNote(ctx, "bob", note.ID, notes.NotePatch{Title: pointer.To("Hijacked")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	err = service.DeleteNote(ctx, "bob", note.ID, true)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.GetNote(ctx, "bob", 999)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	unchanged, err := service.GetNote(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", unchanged.Title)
	assert.False(t, unchanged.IsDeleted)
}

func TestService_References(t *testing.T) {
	ctx := context.Background()
	service := newService()

	mine, err := service.CreateCategory(ctx, "alice", notes.CategoryInput{Name: "Work"})
	require.NoError(t, err)
	theirs, err := service.CreateCategory(ctx, "bob", notes.CategoryInput{Name: "Work"})
	require.NoError(t, err)
	tag, err := service.CreateTag(ctx, "bob", notes.TagInput{Name: "Secret"})
	require.NoError(t, err)

	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{CategoryID: &theirs.ID})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{Tags: []int64{tag.ID}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{CategoryID: pointer.To(int64(404))})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	note, err := service.CreateNote(ctx, "alice", notes.NoteInput{CategoryID: &mine.ID})
	require.NoError(t, err)
	require.NotNil(t, note.CategoryID)

	cleared, err := service.UpdateNote(ctx, "alice", note.ID, notes.NotePatch{CategoryID: nullable.Null[int64]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.CategoryID)

	_, err = service.UpdateNote(ctx, "alice", note.ID, notes.NotePatch{CategoryID: nullable.Of(theirs.ID)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_UpdateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	service := newService()

	note, err := service.CreateNote(ctx, "alice", notes.NoteInput{Title: "Keep"})
	require.NoError(t, err)

	_, err = service.UpdateNote(ctx, "alice", note.ID, notes.NotePatch{Title: pointer.To("  ")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_Quota(t *testing.T) {
	ctx := context.Background()
	service := newService().WithQuotaPolicy(fixedQuota(2))

	first, err := service.CreateNote(ctx, "alice", notes.NoteInput{})
	require.NoError(t, err)
	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{})
	require.NoError(t, err)

	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{})
	require.True(t, apperr.HasCode(err, notes.CodeNoteLimitReached))
	assert.Equal(t, 422, apperr.As(err).HTTPStatus)

	// Trashed notes still count; hard-deleted ones do not.
	require.NoError(t, service.DeleteNote(ctx, "alice", first.ID, false))
	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{})
	assert.True(t, apperr.HasCode(err, notes.CodeNoteLimitReached))

	require.NoError(t, service.DeleteNote(ctx, "alice", first.ID, true))
	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{})
	assert.NoError(t, err)

	// Quotas are per owner.
	_, err = service.CreateNote(ctx, "bob", notes.NoteInput{})
	assert.NoError(t, err)
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()
	service := newService()

	note, err := service.CreateNote(ctx, "alice", notes.NoteInput{Title: "Oops"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteNote(ctx, "alice", note.ID, false))

	restored, err := service.RestoreNote(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	listed, err := service.ListNotes(ctx, "alice", notes.All())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestService_Labels(t *testing.T) {
	ctx := context.Background()
	service := newService()

	category, err := service.CreateCategory(ctx, "alice", notes.CategoryInput{Name: " Work "})
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, constants.DefaultCategoryColor, category.Color)
	assert.Equal(t, constants.DefaultCategoryIcon, category.Icon)

	_, err = service.CreateCategory(ctx, "alice", notes.CategoryInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.CreateCategory(ctx, "alice", notes.CategoryInput{Name: "Bad", Color: "red"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	tag, err := service.CreateTag(ctx, "alice", notes.TagInput{Name: "Deep Work"})
	require.NoError(t, err)
	assert.Equal(t, "deep-work", tag.Slug)
	assert.Equal(t, constants.DefaultTagColor, tag.Color)

	_, err = service.CreateTag(ctx, "alice", notes.TagInput{Name: "deep work!"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	err = service.DeleteCategory(ctx, "bob", category.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	err = service.DeleteTag(ctx, "bob", tag.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, service.DeleteTag(ctx, "alice", tag.ID))
	err = service.DeleteTag(ctx, "alice", tag.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_DeleteOwnerData(t *testing.T) {
	ctx := context.Background()
	service := newService()

	category, err := service.CreateCategory(ctx, "alice", notes.CategoryInput{Name: "Work"})
	require.NoError(t, err)
	tag, err := service.CreateTag(ctx, "alice", notes.TagInput{Name: "Todo"})
	require.NoError(t, err)
	_, err = service.CreateNote(ctx, "alice", notes.NoteInput{CategoryID: &category.ID, Tags: []int64{tag.ID}})
	require.NoError(t, err)
	_, err = service.CreateNote(ctx, "bob", notes.NoteInput{})
	require.NoError(t, err)

	require.NoError(t, service.DeleteOwnerData(ctx, "alice"))

	total, err := service.CountNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	categories, err := service.ListCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, categories)
	tags, err := service.ListTags(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, tags)
}
