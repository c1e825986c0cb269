// Copyright (c) 2026 NotesAI. All rights reserved.

package schema

// NoteTagTable represents the 'notes.tag' table
type NoteTagTable struct {
	Table  string
	ID     string
	UserID string
	Name   string
	Slug   string
	Color  string
}

// NoteTag is the schema definition for notes.tag
var NoteTag = NoteTagTable{
	Table:  "notes.tag",
	ID:     "id",
	UserID: "userid",
	Name:   "name",
	Slug:   "slug",
	Color:  "color",
}

func (t NoteTagTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Slug, t.Color}
}
