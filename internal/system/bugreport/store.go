// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport

import (
	"context"
)

// Draft is the data a store needs to create a report.
type Draft struct {
	Title       string
	Description string
	Type        Type
	Severity    Severity
	UserID      *string
	UserEmail   *string
	URL         *string
	UserAgent   *string
}

// Repository defines the data access contract for bug reports.
type Repository interface {

	// Create assigns id = max+1 and status open.
	Create(context context.Context, draft Draft) (*BugReport, error)

	// FindByID returns a report or NotFound.
	FindByID(context context.Context, id int64) (*BugReport, error)

	/*
		List returns a window of reports, newest first.

		Parameters:
		  - context: context.Context
		  - query: Query (Status/Severity filters, Limit, Offset)

		Returns:
		  - []*BugReport: The requested window
		  - int: Total matches before windowing
		  - error: Storage failures
	*/
	List(context context.Context, query Query) ([]*BugReport, int, error)

	// UpdateStatus sets the status and refreshes updatedAt.
	UpdateStatus(context context.Context, id int64, status Status) (*BugReport, error)

	// Delete removes the report and reports whether it existed.
	Delete(context context.Context, id int64) (bool, error)

	// CountByStatus returns a histogram over every status.
	CountByStatus(context context.Context) (map[Status]int, error)

	// CountBySeverity returns a histogram over every severity.
	CountBySeverity(context context.Context) (map[Severity]int, error)
}
