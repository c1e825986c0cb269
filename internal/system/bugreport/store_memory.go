// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/pagination"
	"github.com/cevheri/noteai/pkg/pointer"
)

// MemoryRepository keeps reports in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[int64]*BugReport
	now     func() time.Time
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[int64]*BugReport), now: time.Now}
}

// WithClock replaces the time source used for timestamps.
func (repository *MemoryRepository) WithClock(now func() time.Time) *MemoryRepository {
	repository.now = now
	return repository
}

func cloneReport(report *BugReport) *BugReport {
	copied := *report
	copied.UserID = pointer.Clone(report.UserID)
	copied.UserEmail = pointer.Clone(report.UserEmail)
	copied.URL = pointer.Clone(report.URL)
	copied.UserAgent = pointer.Clone(report.UserAgent)
	return &copied
}

func (repository *MemoryRepository) Create(_ context.Context, draft Draft) (*BugReport, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var highest int64
	for id := range repository.reports {
		highest = max(highest, id)
	}

	now := repository.now()
	report := cloneReport(&BugReport{
		ID:          highest + 1,
		Title:       draft.Title,
		Description: draft.Description,
		Type:        draft.Type,
		Severity:    draft.Severity,
		Status:      StatusOpen,
		UserID:      draft.UserID,
		UserEmail:   draft.UserEmail,
		URL:         draft.URL,
		UserAgent:   draft.UserAgent,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	repository.reports[report.ID] = report
	return cloneReport(report), nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*BugReport, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	report, ok := repository.reports[id]
	if !ok {
		return nil, apperr.NotFound("Bug report")
	}
	return cloneReport(report), nil
}

func (repository *MemoryRepository) List(_ context.Context, query Query) ([]*BugReport, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matches := make([]*BugReport, 0)
	for _, report := range repository.reports {
		if query.Matches(report) {
			matches = append(matches, cloneReport(report))
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	window := pagination.Window(matches, pagination.Params{Limit: query.Limit, Offset: query.Offset})
	return window, len(matches), nil
}

func (repository *MemoryRepository) UpdateStatus(_ context.Context, id int64, status Status) (*BugReport, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	report, ok := repository.reports[id]
	if !ok {
		return nil, apperr.NotFound("Bug report")
	}
	report.Status = status
	report.UpdatedAt = repository.now()
	return cloneReport(report), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.reports[id]; !ok {
		return false, nil
	}
	delete(repository.reports, id)
	return true, nil
}

func (repository *MemoryRepository) CountByStatus(_ context.Context) (map[Status]int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	histogram := make(map[Status]int, len(Statuses))
	for _, status := range Statuses {
		histogram[status] = 0
	}
	for _, report := range repository.reports {
		histogram[report.Status]++
	}
	return histogram, nil
}

func (repository *MemoryRepository) CountBySeverity(_ context.Context) (map[Severity]int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	histogram := make(map[Severity]int, len(Severities))
	for _, severity := range Severities {
		histogram[severity] = 0
	}
	for _, report := range repository.reports {
		histogram[report.Severity]++
	}
	return histogram, nil
}
