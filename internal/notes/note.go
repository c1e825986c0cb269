// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package notes implements the owner-scoped note, category and tag collections.

Core Responsibility:

  - Notes: Title and content, a weak category reference, tag membership and
    the favorite / archived / deleted flags.
  - Categories and Tags: Per-owner labels whose deletion never removes notes.
  - Listing: An ordered selector contract (see [Filter]).

# Ownership

Stores are plain collections and never compare owners. The [Service] loads
the target first and rejects a caller that does not own it with Forbidden.
*/
package notes

import (
	"slices"
	"time"

	"github.com/cevheri/noteai/pkg/nullable"
	"github.com/cevheri/noteai/pkg/pointer"
)

// # Domain Entities

// Note is a single user-authored document.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     string    `json:"userId"`
	CategoryID *int64    `json:"categoryId"`
	Tags       []int64   `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	IsArchived bool      `json:"isArchived"`
	IsDeleted  bool      `json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Live reports whether the note shows up in ordinary listings.
func (note *Note) Live() bool {
	return !note.IsArchived && !note.IsDeleted
}

// HasTag reports tag membership.
func (note *Note) HasTag(tagID int64) bool {
	return slices.Contains(note.Tags, tagID)
}

func (note *Note) clone() *Note {
	copied := *note
	copied.CategoryID = pointer.Clone(note.CategoryID)
	copied.Tags = slices.Clone(note.Tags)
	if copied.Tags == nil {
		copied.Tags = []int64{}
	}
	return &copied
}

// Category groups notes under a named, colored label.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag is a free-form label; a note may carry many.
type Tag struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Color  string `json:"color"`
	UserID string `json:"userId"`
}

// # Write Models

// NoteDraft is the data a store needs to create a note.
type NoteDraft struct {
	UserID     string
	Title      string
	Content    string
	CategoryID *int64
	Tags       []int64
}

// NotePatch is a shallow partial update. Unset fields are left unchanged;
// CategoryID may be explicitly nulled.
type NotePatch struct {
	Title      *string
	Content    *string
	CategoryID nullable.Value[int64]
	Tags       *[]int64
	IsFavorite *bool
	IsArchived *bool
	IsDeleted  *bool
}

// Apply merges patch into note and refreshes UpdatedAt.
//
// ID, UserID and CreatedAt are never touched.
func (patch NotePatch) Apply(note *Note, now time.Time) {
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.CategoryID.Set {
		note.CategoryID = patch.CategoryID.Ptr()
	}
	if patch.Tags != nil {
		note.Tags = slices.Clone(*patch.Tags)
		if note.Tags == nil {
			note.Tags = []int64{}
		}
	}
	if patch.IsFavorite != nil {
		note.IsFavorite = *patch.IsFavorite
	}
	if patch.IsArchived != nil {
		note.IsArchived = *patch.IsArchived
	}
	if patch.IsDeleted != nil {
		note.IsDeleted = *patch.IsDeleted
	}
	note.UpdatedAt = now
}

// CategoryDraft is the data a store needs to create a category.
type CategoryDraft struct {
	UserID string
	Name   string
	Color  string
	Icon   string
}

// TagDraft is the data a store needs to create a tag.
type TagDraft struct {
	UserID string
	Name   string
	Slug   string
	Color  string
}

// # Field Names

const (
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldCategoryID = "categoryId"
	FieldTagID      = "tagId"
	FieldTags       = "tags"
	FieldName       = "name"
	FieldColor      = "color"
	FieldIcon       = "icon"
	FieldFilter     = "filter"
	FieldLimit      = "limit"
)

// # Limits & Codes

const (
	MaxTitleLength   = 200
	MaxContentLength = 100_000
	MaxLabelLength   = 50

	// CodeNoteLimitReached is returned when an owner is at the note quota.
	CodeNoteLimitReached = "NOTE_LIMIT_REACHED"
)
