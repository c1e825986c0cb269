// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package setting holds the application-wide settings edited from the admin
console.

Settings are a single document. The [Service] keeps the current value in
memory so the hot paths (maintenance switch, registration gate, note quota)
never touch storage.
*/
package setting

import (
	"strings"
	"time"

	"github.com/cevheri/noteai/internal/platform/validate"
)

// Key under which the settings document is persisted.
const Key = "app"

const (
	FieldSiteName              = "siteName"
	FieldSiteDescription       = "siteDescription"
	FieldMaxNotesPerUser       = "maxNotesPerUser"
	FieldMaxAIRequestsPerMonth = "maxAIRequestsPerMonth"

	MaxSiteNameLength        = 100
	MaxSiteDescriptionLength = 500
	MaxQuota                 = 1_000_000
)

// Settings is the application settings document.
type Settings struct {
	SiteName              string    `json:"siteName"`
	SiteDescription       string    `json:"siteDescription"`
	MaintenanceMode       bool      `json:"maintenanceMode"`
	RegistrationEnabled   bool      `json:"registrationEnabled"`
	EmailNotifications    bool      `json:"emailNotifications"`
	MaxNotesPerUser       int       `json:"maxNotesPerUser"`
	MaxAIRequestsPerMonth int       `json:"maxAIRequestsPerMonth"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Defaults returns the settings in effect before an admin saves any.
func Defaults() Settings {
	return Settings{
		SiteName:              "NotesAI",
		SiteDescription:       "AI-Powered Note Taking Application",
		MaintenanceMode:       false,
		RegistrationEnabled:   true,
		EmailNotifications:    true,
		MaxNotesPerUser:       100,
		MaxAIRequestsPerMonth: 50,
	}
}

// normalize trims the free-text fields in place.
func (settings *Settings) normalize() {
	settings.SiteName = strings.TrimSpace(settings.SiteName)
	settings.SiteDescription = strings.TrimSpace(settings.SiteDescription)
}

// Validate checks field bounds. A zero quota means unlimited.
func (settings Settings) Validate() error {
	return (&validate.Validator{}).
		Required(FieldSiteName, settings.SiteName).
		MaxLen(FieldSiteName, settings.SiteName, MaxSiteNameLength).
		MaxLen(FieldSiteDescription, settings.SiteDescription, MaxSiteDescriptionLength).
		Range(FieldMaxNotesPerUser, settings.MaxNotesPerUser, 0, MaxQuota).
		Range(FieldMaxAIRequestsPerMonth, settings.MaxAIRequestsPerMonth, 0, MaxQuota).
		Err()
}
