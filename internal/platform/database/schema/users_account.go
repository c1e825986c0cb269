// Copyright (c) 2026 NotesAI. All rights reserved.

// Package schema holds table and column identifiers for the PostgreSQL stores.
//
// Repositories build SQL from these values with fmt.Sprintf so that a column
// rename touches one file.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	Name:      "name",
	AvatarURL: "avatarurl",
	Role:      "role",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Name, t.AvatarURL, t.Role, t.CreatedAt, t.UpdatedAt,
	}
}
