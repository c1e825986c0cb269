// Copyright (c) 2026 NotesAI. All rights reserved.

package notes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/nullable"
	"github.com/cevheri/noteai/pkg/pointer"
)

// steppingClock advances one second per reading so updatedAt orders are total.
func steppingClock() func() time.Time {
	current := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func ids(list []*notes.Note) []int64 {
	out := make([]int64, 0, len(list))
	for _, note := range list {
		out = append(out, note.ID)
	}
	return out
}

func TestMemoryNoteRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryStore().WithClock(steppingClock()).Notes()

	first, err := repo.Create(ctx, notes.NoteDraft{UserID: "u1", Title: "One"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, []int64{}, first.Tags)
	assert.Nil(t, first.CategoryID)
	assert.False(t, first.IsFavorite || first.IsArchived || first.IsDeleted)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second, err := repo.Create(ctx, notes.NoteDraft{UserID: "u1", Title: "Two"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	// max+1: the highest id is reused after it is hard-deleted.
	existed, err := repo.Delete(ctx, second.ID, true)
	require.NoError(t, err)
	require.True(t, existed)

	third, err := repo.Create(ctx, notes.NoteDraft{UserID: "u2", Title: "Three"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.ID)
}

func TestMemoryNoteRepository_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryStore().WithClock(steppingClock()).Notes()

	created, err := repo.Create(ctx, notes.NoteDraft{UserID: "u1", Title: "Draft", CategoryID: pointer.To(int64(9))})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, notes.NotePatch{
		Title:      pointer.To("Final"),
		CategoryID: nullable.Null[int64](),
		IsFavorite: pointer.To(true),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "u1", updated.UserID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Final", updated.Title)
	assert.Nil(t, updated.CategoryID)
	assert.True(t, updated.IsFavorite)

	// An empty patch still refreshes updatedAt.
	touched, err := repo.Update(ctx, created.ID, notes.NotePatch{})
	require.NoError(t, err)
	assert.True(t, touched.UpdatedAt.After(updated.UpdatedAt))
	assert.Equal(t, "Final", touched.Title)

	_, err = repo.Update(ctx, 404, notes.NotePatch{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestMemoryNoteRepository_Recent(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryStore().WithClock(steppingClock()).Notes()

	for range 7 {
		_, err := repo.Create(ctx, notes.NoteDraft{UserID: "u1"})
		require.NoError(t, err)
	}
	// Touch note 2 so it becomes the most recent.
	_, err := repo.Update(ctx, 2, notes.NotePatch{Content: pointer.To("edited")})
	require.NoError(t, err)
	_, err = repo.Update(ctx, 6, notes.NotePatch{IsArchived: pointer.To(true)})
	require.NoError(t, err)

	recent, err := repo.List(ctx, "u1", notes.Recent(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 7, 5}, ids(recent))

	// Non-positive limits fall back to the store default.
	recent, err = repo.List(ctx, "u1", notes.Recent(0))
	require.NoError(t, err)
	assert.Len(t, recent, notes.StoreRecentLimit)
}

func TestMemoryNoteRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryStore().Notes()

	_, err := repo.Create(ctx, notes.NoteDraft{UserID: "alice", Title: "Mine"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, notes.NoteDraft{UserID: "bob", Title: "Mine too"})
	require.NoError(t, err)

	listed, err := repo.List(ctx, "alice", notes.Search("mine"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(listed))

	count, err := repo.CountByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.DeleteByOwner(ctx, "bob"))
	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

// # Properties

type flags struct {
	favorite, archived, deleted bool
}

func drawFlags(t *rapid.T, label string) flags {
	return flags{
		favorite: rapid.Bool().Draw(t, label+"_favorite"),
		archived: rapid.Bool().Draw(t, label+"_archived"),
		deleted:  rapid.Bool().Draw(t, label+"_deleted"),
	}
}

func contains(list []*notes.Note, id int64) bool {
	for _, note := range list {
		if note.ID == id {
			return true
		}
	}
	return false
}

func TestMemoryNoteRepository_ListingExclusivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		repo := notes.NewMemoryStore().Notes()

		count := rapid.IntRange(1, 12).Draw(t, "count")
		want := make(map[int64]flags, count)
		for i := range count {
			note, err := repo.Create(ctx, notes.NoteDraft{UserID: "owner"})
			require.NoError(t, err)

			f := drawFlags(t, "note"+string(rune('a'+i)))
			_, err = repo.Update(ctx, note.ID, notes.NotePatch{
				IsFavorite: &f.favorite,
				IsArchived: &f.archived,
				IsDeleted:  &f.deleted,
			})
			require.NoError(t, err)
			want[note.ID] = f
		}

		all, err := repo.List(ctx, "owner", notes.All())
		require.NoError(t, err)
		archived, err := repo.List(ctx, "owner", notes.Archived())
		require.NoError(t, err)
		trash, err := repo.List(ctx, "owner", notes.Trash())
		require.NoError(t, err)
		favorites, err := repo.List(ctx, "owner", notes.Favorites())
		require.NoError(t, err)

		for id, f := range want {
			live := !f.archived && !f.deleted
			assert.Equal(t, live, contains(all, id), "all %d", id)
			assert.Equal(t, f.archived && !f.deleted, contains(archived, id), "archived %d", id)
			assert.Equal(t, f.deleted, contains(trash, id), "trash %d", id)
			assert.Equal(t, live && f.favorite, contains(favorites, id), "favorites %d", id)
		}

		// Every note is in exactly one of all, archived and trash.
		assert.Equal(t, count, len(all)+len(archived)+len(trash))
	})
}

func TestMemoryNoteRepository_DeleteProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		repo := notes.NewMemoryStore().Notes()

		count := rapid.IntRange(1, 8).Draw(t, "count")
		for range count {
			_, err := repo.Create(ctx, notes.NoteDraft{UserID: "owner"})
			require.NoError(t, err)
		}
		target := int64(rapid.IntRange(1, count).Draw(t, "target"))

		// Soft delete keeps the note retrievable and moves it to the trash.
		existed, err := repo.Delete(ctx, target, false)
		require.NoError(t, err)
		require.True(t, existed)

		soft, err := repo.FindByID(ctx, target)
		require.NoError(t, err)
		assert.True(t, soft.IsDeleted)
		trash, err := repo.List(ctx, "owner", notes.Trash())
		require.NoError(t, err)
		assert.True(t, contains(trash, target))

		// Hard delete removes it; a second hard delete reports absence.
		existed, err = repo.Delete(ctx, target, true)
		require.NoError(t, err)
		assert.True(t, existed)

		_, err = repo.FindByID(ctx, target)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

		existed, err = repo.Delete(ctx, target, true)
		require.NoError(t, err)
		assert.False(t, existed)
	})
}

func TestMemoryStore_LabelDeletes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := notes.NewMemoryStore().WithClock(steppingClock())
		noteRepo, categoryRepo, tagRepo := store.Notes(), store.Categories(), store.Tags()

		category, err := categoryRepo.Create(ctx, notes.CategoryDraft{UserID: "owner", Name: "Work"})
		require.NoError(t, err)
		other, err := categoryRepo.Create(ctx, notes.CategoryDraft{UserID: "owner", Name: "Home"})
		require.NoError(t, err)
		tag, err := tagRepo.Create(ctx, notes.TagDraft{UserID: "owner", Name: "Urgent", Slug: "urgent"})
		require.NoError(t, err)
		keep, err := tagRepo.Create(ctx, notes.TagDraft{UserID: "owner", Name: "Later", Slug: "later"})
		require.NoError(t, err)

		count := rapid.IntRange(1, 10).Draw(t, "count")
		before := make(map[int64]*notes.Note, count)
		for i := range count {
			label := "note" + string(rune('a'+i))
			categoryID := other.ID
			if rapid.Bool().Draw(t, label+"_in_category") {
				categoryID = category.ID
			}
			tags := []int64{keep.ID}
			if rapid.Bool().Draw(t, label+"_tagged") {
				tags = []int64{tag.ID, keep.ID}
			}

			note, err := noteRepo.Create(ctx, notes.NoteDraft{UserID: "owner", CategoryID: &categoryID, Tags: tags})
			require.NoError(t, err)
			before[note.ID] = note
		}

		existed, err := categoryRepo.Delete(ctx, category.ID)
		require.NoError(t, err)
		require.True(t, existed)
		existed, err = tagRepo.Delete(ctx, tag.ID)
		require.NoError(t, err)
		require.True(t, existed)

		for id, original := range before {
			after, err := noteRepo.FindByID(ctx, id)
			require.NoError(t, err, "notes survive label deletes")

			if *original.CategoryID == category.ID {
				assert.Nil(t, after.CategoryID)
			} else {
				assert.Equal(t, original.CategoryID, after.CategoryID)
			}
			assert.Equal(t, []int64{keep.ID}, after.Tags)
			assert.Equal(t, original.UpdatedAt, after.UpdatedAt)
		}

		existed, err = categoryRepo.Delete(ctx, category.ID)
		require.NoError(t, err)
		assert.False(t, existed)
	})
}

func TestMemoryTagRepository_SlugConflict(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryStore().Tags()

	_, err := repo.Create(ctx, notes.TagDraft{UserID: "u1", Name: "Work", Slug: "work"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, notes.TagDraft{UserID: "u1", Name: "work", Slug: "work"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	// Slugs are unique per owner only.
	other, err := repo.Create(ctx, notes.TagDraft{UserID: "u2", Name: "Work", Slug: "work"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), other.ID)
}
