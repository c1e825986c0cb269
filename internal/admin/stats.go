// Copyright (c) 2026 NotesAI. All rights reserved.

package admin

import (
	"context"
	"time"

	"github.com/cevheri/noteai/internal/system/bugreport"
	"github.com/cevheri/noteai/internal/users/auth"
)

const (
	// StatsRecentLimit is the size of the recent lists on the dashboard.
	StatsRecentLimit = 5

	// AnalyticsRecentLimit is the size of the recent lists on the analytics page.
	AnalyticsRecentLimit = 10

	// GrowthWindow is the look-back period of the "this week" counters.
	GrowthWindow = 7 * 24 * time.Hour
)

// Stats is the dashboard summary.
type Stats struct {
	TotalUsers       int                    `json:"totalUsers"`
	TotalNotes       int                    `json:"totalNotes"`
	TotalBugReports  int                    `json:"totalBugReports"`
	OpenBugReports   int                    `json:"openBugReports"`
	ActiveUsers      int                    `json:"activeUsers"`
	RecentUsers      []*auth.User           `json:"recentUsers"`
	RecentBugReports []*bugreport.BugReport `json:"recentBugReports"`
}

// Analytics extends [Stats] with growth counters and report histograms.
type Analytics struct {
	Stats
	NewUsersThisWeek     int                        `json:"newUsersThisWeek"`
	NewNotesThisWeek     int                        `json:"newNotesThisWeek"`
	BugReportsByStatus   map[bugreport.Status]int   `json:"bugReportsByStatus"`
	BugReportsBySeverity map[bugreport.Severity]int `json:"bugReportsBySeverity"`
}

// Stats computes the dashboard summary.
func (service *Service) Stats(context context.Context) (*Stats, error) {
	return service.overview(context, StatsRecentLimit)
}

/*
Analytics computes the analytics page payload.

Parameters:
  - context: context.Context

Returns:
  - *Analytics: Totals, 7-day growth, 10 recent items and histograms
  - error: Storage failures
*/
func (service *Service) Analytics(context context.Context) (*Analytics, error) {
	stats, err := service.overview(context, AnalyticsRecentLimit)
	if err != nil {
		return nil, err
	}

	since := service.now().Add(-GrowthWindow)
	analytics := &Analytics{Stats: *stats}

	if analytics.NewUsersThisWeek, err = service.userRepository.CountCreatedSince(context, since); err != nil {
		return nil, err
	}
	if analytics.NewNotesThisWeek, err = service.notes.CountNotesCreatedSince(context, since); err != nil {
		return nil, err
	}
	if analytics.BugReportsByStatus, err = service.bugReports.CountByStatus(context); err != nil {
		return nil, err
	}
	if analytics.BugReportsBySeverity, err = service.bugReports.CountBySeverity(context); err != nil {
		return nil, err
	}
	return analytics, nil
}

// overview gathers the totals and the recent lists shared by both payloads.
func (service *Service) overview(context context.Context, recent int) (*Stats, error) {
	var (
		stats = &Stats{}
		err   error
	)

	if stats.RecentUsers, stats.TotalUsers, err = service.userRepository.List(context, auth.UserQuery{Limit: recent}); err != nil {
		return nil, err
	}
	if stats.TotalNotes, err = service.notes.CountNotes(context); err != nil {
		return nil, err
	}
	if stats.RecentBugReports, stats.TotalBugReports, err = service.bugReports.List(context, bugreport.Query{Limit: recent}); err != nil {
		return nil, err
	}
	if stats.OpenBugReports, err = service.bugReports.Count(context, bugreport.StatusOpen); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = service.sessionRepository.CountActiveUsers(context, service.now()); err != nil {
		return nil, err
	}
	return stats, nil
}
