// Copyright (c) 2026 NotesAI. All rights reserved.

package schema

// NoteTable represents the 'notes.note' table
type NoteTable struct {
	Table      string
	ID         string
	UserID     string
	CategoryID string
	Title      string
	Content    string
	TagIDs     string
	IsFavorite string
	IsArchived string
	IsDeleted  string
	CreatedAt  string
	UpdatedAt  string
}

// Note is the schema definition for notes.note
var Note = NoteTable{
	Table:      "notes.note",
	ID:         "id",
	UserID:     "userid",
	CategoryID: "categoryid",
	Title:      "title",
	Content:    "content",
	TagIDs:     "tagids",
	IsFavorite: "isfavorite",
	IsArchived: "isarchived",
	IsDeleted:  "isdeleted",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t NoteTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.CategoryID, t.Title, t.Content, t.TagIDs,
		t.IsFavorite, t.IsArchived, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
