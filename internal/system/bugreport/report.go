// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package bugreport implements user-submitted bug reports and their triage.

Any signed-in user may submit a report. Listing, status changes and deletion
belong to the admin surface.
*/
package bugreport

import (
	"strings"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/slice"
)

// # Domain Enums

// Type classifies what a report is about.
type Type string

const (
	TypeBug         Type = "bug"
	TypeFeature     Type = "feature"
	TypeImprovement Type = "improvement"
	TypeOther       Type = "other"
)

// Types lists every accepted [Type].
var Types = []Type{TypeBug, TypeFeature, TypeImprovement, TypeOther}

// Severity ranks the impact of a report.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every accepted [Severity], mildest first.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Status is the triage state of a report.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists every accepted [Status] in workflow order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// # Domain Entities

// BugReport is a single submitted report.
type BugReport struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        Type      `json:"type"`
	Severity    Severity  `json:"severity"`
	Status      Status    `json:"status"`
	UserID      *string   `json:"userId"`
	UserEmail   *string   `json:"userEmail"`
	URL         *string   `json:"url"`
	UserAgent   *string   `json:"userAgent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Query selects a window of reports. Empty Status or Severity match everything.
type Query struct {
	Status   Status
	Severity Severity
	Limit    int
	Offset   int
}

// Matches reports whether report passes the status and severity filters.
func (query Query) Matches(report *BugReport) bool {
	return (query.Status == "" || report.Status == query.Status) &&
		(query.Severity == "" || report.Severity == query.Severity)
}

// # Parsing

const (
	CodeInvalidType     = "INVALID_TYPE"
	CodeInvalidSeverity = "INVALID_SEVERITY"
	CodeInvalidStatus   = "INVALID_STATUS"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldType        = "type"
	FieldSeverity    = "severity"
	FieldStatus      = "status"
	FieldURL         = "url"

	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxURLLength         = 2048
)

// ParseType accepts exactly one of [Types].
func ParseType(raw string) (Type, error) {
	return parseEnum(raw, Types, FieldType, CodeInvalidType)
}

// ParseSeverity accepts exactly one of [Severities].
func ParseSeverity(raw string) (Severity, error) {
	return parseEnum(raw, Severities, FieldSeverity, CodeInvalidSeverity)
}

// ParseStatus accepts exactly one of [Statuses].
func ParseStatus(raw string) (Status, error) {
	return parseEnum(raw, Statuses, FieldStatus, CodeInvalidStatus)
}

func parseEnum[T ~string](raw string, allowed []T, field, code string) (T, error) {
	for _, candidate := range allowed {
		if string(candidate) == raw {
			return candidate, nil
		}
	}

	names := strings.Join(slice.Map(allowed, func(v T) string { return string(v) }), ", ")
	var zero T
	return zero, apperr.ValidationError(
		"Invalid "+field+". Must be one of: "+names,
		apperr.FieldError{Field: field, Message: "Must be one of: " + names},
	).WithCode(code)
}
