// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/system/bugreport"
)

func steppingClock() func() time.Time {
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newService() *bugreport.Service {
	return bugreport.NewService(bugreport.NewMemoryRepository().WithClock(steppingClock()))
}

var reporter = &sec.Identity{UserID: "u1", Email: "ada@example.com", Role: sec.RoleUser}

func TestService_SubmitDefaults(t *testing.T) {
	ctx := context.Background()
	service := newService()

	report, err := service.Submit(ctx, reporter, bugreport.SubmitInput{
		Title:       "  Editor freezes  ",
		Description: "Typing in a long note stalls",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.ID)
	assert.Equal(t, "Editor freezes", report.Title)
	assert.Equal(t, bugreport.TypeBug, report.Type)
	assert.Equal(t, bugreport.SeverityMedium, report.Severity)
	assert.Equal(t, bugreport.StatusOpen, report.Status)
	require.NotNil(t, report.UserEmail)
	assert.Equal(t, "ada@example.com", *report.UserEmail)
	assert.Nil(t, report.URL)
	assert.Nil(t, report.UserAgent)
}

func TestService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	service := newService()

	tests := []struct {
		name  string
		input bugreport.SubmitInput
		code  string
	}{
		{"missing title", bugreport.SubmitInput{Description: "d"}, apperr.CodeValidation},
		{"missing description", bugreport.SubmitInput{Title: "t"}, apperr.CodeValidation},
		{"long title", bugreport.SubmitInput{Title: strings.Repeat("x", bugreport.MaxTitleLength+1), Description: "d"}, apperr.CodeValidation},
		{"unknown type", bugreport.SubmitInput{Title: "t", Description: "d", Type: "rant"}, bugreport.CodeInvalidType},
		{"unknown severity", bugreport.SubmitInput{Title: "t", Description: "d", Severity: "urgent"}, bugreport.CodeInvalidSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(ctx, reporter, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestService_Triage(t *testing.T) {
	ctx := context.Background()
	service := newService()

	for _, severity := range []string{"low", "high", "high"} {
		_, err := service.Submit(ctx, reporter, bugreport.SubmitInput{Title: "t", Description: "d", Severity: severity})
		require.NoError(t, err)
	}

	updated, err := service.UpdateStatus(ctx, 2, "resolved")
	require.NoError(t, err)
	assert.Equal(t, bugreport.StatusResolved, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = service.UpdateStatus(ctx, 2, "done")
	assert.True(t, apperr.HasCode(err, bugreport.CodeInvalidStatus))

	_, err = service.UpdateStatus(ctx, 99, "closed")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	open, err := service.Count(ctx, bugreport.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, 2, open)

	bySeverity, err := service.CountBySeverity(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[bugreport.Severity]int{"low": 1, "medium": 0, "high": 2, "critical": 0}, bySeverity)

	byStatus, err := service.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[bugreport.Status]int{"open": 2, "in_progress": 0, "resolved": 1, "closed": 0}, byStatus)

	require.NoError(t, service.Delete(ctx, 1))
	assert.True(t, apperr.HasCode(service.Delete(ctx, 1), apperr.CodeNotFound))
}

func TestService_AnonymousSubmission(t *testing.T) {
	report, err := newService().Submit(context.Background(), nil, bugreport.SubmitInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.Nil(t, report.UserID)
	assert.Nil(t, report.UserEmail)
}
