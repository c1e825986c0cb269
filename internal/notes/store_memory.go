// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/slice"
)

// # Shared State

// MemoryStore holds notes, categories and tags in process memory.
//
// The three collections share one lock so that label deletes can rewrite
// notes atomically. Every operation is a linear scan.
type MemoryStore struct {
	mu         sync.RWMutex
	notes      map[int64]*Note
	categories map[int64]*Category
	tags       map[int64]*Tag
	now        func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes:      make(map[int64]*Note),
		categories: make(map[int64]*Category),
		tags:       make(map[int64]*Tag),
		now:        time.Now,
	}
}

// WithClock replaces the time source used for timestamps.
func (store *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	store.now = now
	return store
}

// Notes returns the note view of the store.
func (store *MemoryStore) Notes() *MemoryNoteRepository {
	return &MemoryNoteRepository{store: store}
}

// Categories returns the category view of the store.
func (store *MemoryStore) Categories() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{store: store}
}

// Tags returns the tag view of the store.
func (store *MemoryStore) Tags() *MemoryTagRepository {
	return &MemoryTagRepository{store: store}
}

// nextID is max existing id + 1, or 1 when empty.
func nextID[V any](items map[int64]V) int64 {
	var highest int64
	for id := range items {
		highest = max(highest, id)
	}
	return highest + 1
}

func sortedByID[V any](items []V, id func(V) int64) []V {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
	return items
}

// # Notes

// MemoryNoteRepository implements NoteRepository over a [MemoryStore].
type MemoryNoteRepository struct {
	store *MemoryStore
}

func (repository *MemoryNoteRepository) List(_ context.Context, userID string, filter Filter) ([]*Note, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	matches := make([]*Note, 0)
	for _, note := range repository.store.notes {
		if note.UserID == userID && filter.Matches(note) {
			matches = append(matches, note.clone())
		}
	}
	return filter.Arrange(matches), nil
}

func (repository *MemoryNoteRepository) FindByID(_ context.Context, id int64) (*Note, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	note, ok := repository.store.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note")
	}
	return note.clone(), nil
}

func (repository *MemoryNoteRepository) Create(_ context.Context, draft NoteDraft) (*Note, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	now := repository.store.now()
	note := &Note{
		ID:         nextID(repository.store.notes),
		Title:      draft.Title,
		Content:    draft.Content,
		UserID:     draft.UserID,
		CategoryID: draft.CategoryID,
		Tags:       draft.Tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	note = note.clone()

	repository.store.notes[note.ID] = note
	return note.clone(), nil
}

func (repository *MemoryNoteRepository) Update(_ context.Context, id int64, patch NotePatch) (*Note, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	note, ok := repository.store.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note")
	}

	patch.Apply(note, repository.store.now())
	return note.clone(), nil
}

func (repository *MemoryNoteRepository) Delete(_ context.Context, id int64, permanent bool) (bool, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	note, ok := repository.store.notes[id]
	if !ok {
		return false, nil
	}

	if permanent {
		delete(repository.store.notes, id)
		return true, nil
	}

	note.IsDeleted = true
	note.UpdatedAt = repository.store.now()
	return true, nil
}

func (repository *MemoryNoteRepository) CountByOwner(_ context.Context, userID string) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	total := 0
	for _, note := range repository.store.notes {
		if note.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (repository *MemoryNoteRepository) Count(_ context.Context) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	return len(repository.store.notes), nil
}

func (repository *MemoryNoteRepository) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	total := 0
	for _, note := range repository.store.notes {
		if !note.CreatedAt.Before(since) {
			total++
		}
	}
	return total, nil
}

func (repository *MemoryNoteRepository) DeleteByOwner(_ context.Context, userID string) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	for id, note := range repository.store.notes {
		if note.UserID == userID {
			delete(repository.store.notes, id)
		}
	}
	return nil
}

// # Categories

// MemoryCategoryRepository implements CategoryRepository over a [MemoryStore].
type MemoryCategoryRepository struct {
	store *MemoryStore
}

func (repository *MemoryCategoryRepository) ListByOwner(_ context.Context, userID string) ([]*Category, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	owned := make([]*Category, 0)
	for _, category := range repository.store.categories {
		if category.UserID == userID {
			copied := *category
			owned = append(owned, &copied)
		}
	}
	return sortedByID(owned, func(category *Category) int64 { return category.ID }), nil
}

func (repository *MemoryCategoryRepository) FindByID(_ context.Context, id int64) (*Category, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	category, ok := repository.store.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	copied := *category
	return &copied, nil
}

func (repository *MemoryCategoryRepository) Create(_ context.Context, draft CategoryDraft) (*Category, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	category := &Category{
		ID:        nextID(repository.store.categories),
		Name:      draft.Name,
		Color:     draft.Color,
		Icon:      draft.Icon,
		UserID:    draft.UserID,
		CreatedAt: repository.store.now(),
	}
	repository.store.categories[category.ID] = category

	copied := *category
	return &copied, nil
}

func (repository *MemoryCategoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if _, ok := repository.store.categories[id]; !ok {
		return false, nil
	}
	delete(repository.store.categories, id)
	repository.store.clearCategory(id)
	return true, nil
}

func (repository *MemoryCategoryRepository) DeleteByOwner(_ context.Context, userID string) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	for id, category := range repository.store.categories {
		if category.UserID == userID {
			delete(repository.store.categories, id)
			repository.store.clearCategory(id)
		}
	}
	return nil
}

// clearCategory nulls the weak reference. The caller holds the write lock.
func (store *MemoryStore) clearCategory(categoryID int64) {
	for _, note := range store.notes {
		if note.CategoryID != nil && *note.CategoryID == categoryID {
			note.CategoryID = nil
		}
	}
}

// # Tags

// MemoryTagRepository implements TagRepository over a [MemoryStore].
type MemoryTagRepository struct {
	store *MemoryStore
}

func (repository *MemoryTagRepository) ListByOwner(_ context.Context, userID string) ([]*Tag, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	owned := make([]*Tag, 0)
	for _, tag := range repository.store.tags {
		if tag.UserID == userID {
			copied := *tag
			owned = append(owned, &copied)
		}
	}
	return sortedByID(owned, func(tag *Tag) int64 { return tag.ID }), nil
}

func (repository *MemoryTagRepository) FindByID(_ context.Context, id int64) (*Tag, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	tag, ok := repository.store.tags[id]
	if !ok {
		return nil, apperr.NotFound("Tag")
	}
	copied := *tag
	return &copied, nil
}

func (repository *MemoryTagRepository) Create(_ context.Context, draft TagDraft) (*Tag, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	for _, existing := range repository.store.tags {
		if existing.UserID == draft.UserID && existing.Slug == draft.Slug {
			return nil, apperr.Conflict("A tag with this name already exists")
		}
	}

	tag := &Tag{
		ID:     nextID(repository.store.tags),
		Name:   draft.Name,
		Slug:   draft.Slug,
		Color:  draft.Color,
		UserID: draft.UserID,
	}
	repository.store.tags[tag.ID] = tag

	copied := *tag
	return &copied, nil
}

func (repository *MemoryTagRepository) Delete(_ context.Context, id int64) (bool, error) {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if _, ok := repository.store.tags[id]; !ok {
		return false, nil
	}
	delete(repository.store.tags, id)
	repository.store.removeTag(id)
	return true, nil
}

func (repository *MemoryTagRepository) DeleteByOwner(_ context.Context, userID string) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	for id, tag := range repository.store.tags {
		if tag.UserID == userID {
			delete(repository.store.tags, id)
			repository.store.removeTag(id)
		}
	}
	return nil
}

// removeTag prunes membership. The caller holds the write lock.
func (store *MemoryStore) removeTag(tagID int64) {
	for _, note := range store.notes {
		if slices.Contains(note.Tags, tagID) {
			note.Tags = slice.Without(note.Tags, tagID)
		}
	}
}
