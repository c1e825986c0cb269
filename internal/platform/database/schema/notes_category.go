// Copyright (c) 2026 NotesAI. All rights reserved.

package schema

// NoteCategoryTable represents the 'notes.category' table
type NoteCategoryTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	Color     string
	Icon      string
	CreatedAt string
}

// NoteCategory is the schema definition for notes.category
var NoteCategory = NoteCategoryTable{
	Table:     "notes.category",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	Color:     "color",
	Icon:      "icon",
	CreatedAt: "createdat",
}

func (t NoteCategoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Name, t.Color, t.Icon, t.CreatedAt}
}
