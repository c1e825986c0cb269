// Copyright (c) 2026 NotesAI. All rights reserved.

package schema

// SystemBugReportTable represents the 'system.bugreport' table
type SystemBugReportTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Type        string
	Severity    string
	Status      string
	UserID      string
	UserEmail   string
	URL         string
	UserAgent   string
	CreatedAt   string
	UpdatedAt   string
}

// SystemBugReport is the schema definition for system.bugreport
var SystemBugReport = SystemBugReportTable{
	Table:       "system.bugreport",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Type:        "type",
	Severity:    "severity",
	Status:      "status",
	UserID:      "userid",
	UserEmail:   "useremail",
	URL:         "url",
	UserAgent:   "useragent",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t SystemBugReportTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Type, t.Severity, t.Status,
		t.UserID, t.UserEmail, t.URL, t.UserAgent, t.CreatedAt, t.UpdatedAt,
	}
}
