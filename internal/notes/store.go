// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"
	"time"
)

// # Note Data Access

// NoteRepository defines the data access contract for notes.
//
// Implementations never check ownership.
type NoteRepository interface {

	/*
		List returns the owner's notes selected by filter.

		Parameters:
		  - context: context.Context
		  - userID: string (Owner)
		  - filter: Filter (Exactly one active selector)

		Returns:
		  - []*Note: Matches, id ascending (recent: updatedAt descending)
		  - error: Storage failures
	*/
	List(context context.Context, userID string, filter Filter) ([]*Note, error)

	/*
		FindByID returns a note by id regardless of owner or flags.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Note: The note
		  - error: NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*Note, error)

	/*
		Create assigns id = max+1 (1 when empty), stamps timestamps and clears all flags.

		Parameters:
		  - context: context.Context
		  - draft: NoteDraft

		Returns:
		  - *Note: The created note
		  - error: Storage failures
	*/
	Create(context context.Context, draft NoteDraft) (*Note, error)

	/*
		Update merges patch into the note and refreshes updatedAt.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - patch: NotePatch

		Returns:
		  - *Note: The updated note
		  - error: NotFound or storage failures
	*/
	Update(context context.Context, id int64, patch NotePatch) (*Note, error)

	/*
		Delete removes the note when permanent, otherwise flags it deleted.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - permanent: bool

		Returns:
		  - bool: Whether the note existed
		  - error: Storage failures
	*/
	Delete(context context.Context, id int64, permanent bool) (bool, error)

	// CountByOwner counts every stored note of the owner, trash included.
	CountByOwner(context context.Context, userID string) (int, error)

	// Count counts every stored note.
	Count(context context.Context) (int, error)

	// CountCreatedSince counts notes created at or after since.
	CountCreatedSince(context context.Context, since time.Time) (int, error)

	// DeleteByOwner hard-deletes every note of the owner.
	DeleteByOwner(context context.Context, userID string) error
}

// # Label Data Access

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	// ListByOwner returns the owner's categories, id ascending.
	ListByOwner(context context.Context, userID string) ([]*Category, error)

	// FindByID returns a category or NotFound.
	FindByID(context context.Context, id int64) (*Category, error)

	// Create assigns id = max+1 (1 when empty).
	Create(context context.Context, draft CategoryDraft) (*Category, error)

	/*
		Delete removes the category and nulls categoryId on every note that referenced it.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - bool: Whether the category existed
		  - error: Storage failures
	*/
	Delete(context context.Context, id int64) (bool, error)

	// DeleteByOwner removes every category of the owner.
	DeleteByOwner(context context.Context, userID string) error
}

// TagRepository defines the data access contract for tags.
type TagRepository interface {
	// ListByOwner returns the owner's tags, id ascending.
	ListByOwner(context context.Context, userID string) ([]*Tag, error)

	// FindByID returns a tag or NotFound.
	FindByID(context context.Context, id int64) (*Tag, error)

	// Create assigns id = max+1 (1 when empty). A slug already used by the owner is a Conflict.
	Create(context context.Context, draft TagDraft) (*Tag, error)

	/*
		Delete removes the tag and prunes its id from every note's tag list.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - bool: Whether the tag existed
		  - error: Storage failures
	*/
	Delete(context context.Context, id int64) (bool, error)

	// DeleteByOwner removes every tag of the owner.
	DeleteByOwner(context context.Context, userID string) error
}
