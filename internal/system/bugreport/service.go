// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/platform/validate"
	"github.com/cevheri/noteai/pkg/pointer"
)

// Service implements submission and triage of bug reports.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Submission

// SubmitInput carries a report as typed by the user. Blank Type and Severity
// default to bug and medium.
type SubmitInput struct {
	Title       string
	Description string
	Type        string
	Severity    string
	URL         string
	UserAgent   string
}

/*
Submit validates and stores a new report on behalf of reporter.

Parameters:
  - context: context.Context
  - reporter: *sec.Identity (nil files an anonymous report)
  - input: SubmitInput

Returns:
  - *BugReport: The stored report, status open
  - error: ValidationError, INVALID_TYPE, INVALID_SEVERITY or storage errors
*/
func (service *Service) Submit(context context.Context, reporter *sec.Identity, input SubmitInput) (*BugReport, error) {

	// 1. Enumerations
	kind := TypeBug
	if raw := strings.TrimSpace(input.Type); raw != "" {
		parsed, err := ParseType(raw)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	severity := SeverityMedium
	if raw := strings.TrimSpace(input.Severity); raw != "" {
		parsed, err := ParseSeverity(raw)
		if err != nil {
			return nil, err
		}
		severity = parsed
	}

	// 2. Free text
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	url := strings.TrimSpace(input.URL)
	err := (&validate.Validator{}).
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLength).
		Required(FieldDescription, description).
		MaxLen(FieldDescription, description, MaxDescriptionLength).
		MaxLen(FieldURL, url, MaxURLLength).
		Err()
	if err != nil {
		return nil, err
	}

	draft := Draft{
		Title:       title,
		Description: description,
		Type:        kind,
		Severity:    severity,
		URL:         optional(url),
		UserAgent:   optional(strings.TrimSpace(input.UserAgent)),
	}
	if reporter != nil {
		draft.UserID = pointer.To(reporter.UserID)
		draft.UserEmail = pointer.To(reporter.Email)
	}

	report, err := service.repository.Create(context, draft)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "bug_report_submitted",
		slog.Int64("bug_report_id", report.ID),
		slog.String("severity", string(report.Severity)),
	)
	return report, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// # Triage

// List returns a window of reports, newest first, with the total match count.
func (service *Service) List(context context.Context, query Query) ([]*BugReport, int, error) {
	return service.repository.List(context, query)
}

// Recent returns the newest n reports.
func (service *Service) Recent(context context.Context, n int) ([]*BugReport, error) {
	reports, _, err := service.repository.List(context, Query{Limit: n})
	return reports, err
}

// Count returns the number of reports, optionally restricted to status.
func (service *Service) Count(context context.Context, status Status) (int, error) {
	// A one-row window is enough to obtain the total.
	_, total, err := service.repository.List(context, Query{Status: status, Limit: 1})
	return total, err
}

/*
UpdateStatus moves a report through the triage workflow.

Parameters:
  - context: context.Context
  - id: int64
  - raw: string (one of [Statuses])

Returns:
  - *BugReport: The updated report
  - error: INVALID_STATUS, NotFound or storage errors
*/
func (service *Service) UpdateStatus(context context.Context, id int64, raw string) (*BugReport, error) {
	status, err := ParseStatus(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	report, err := service.repository.UpdateStatus(context, id, status)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "bug_report_status_changed",
		slog.Int64("bug_report_id", report.ID),
		slog.String("status", string(report.Status)),
	)
	return report, nil
}

// Delete removes a report.
func (service *Service) Delete(context context.Context, id int64) error {
	existed, err := service.repository.Delete(context, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperr.NotFound("Bug report")
	}

	ctxutil.GetLogger(context).InfoContext(context, "bug_report_deleted", slog.Int64("bug_report_id", id))
	return nil
}

// CountByStatus returns a histogram with an entry for every status.
func (service *Service) CountByStatus(context context.Context) (map[Status]int, error) {
	return service.repository.CountByStatus(context)
}

// CountBySeverity returns a histogram with an entry for every severity.
func (service *Service) CountBySeverity(context context.Context) (map[Severity]int, error) {
	return service.repository.CountBySeverity(context)
}
