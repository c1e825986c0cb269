// Copyright (c) 2026 NotesAI. All rights reserved.

package setting_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/system/setting"
)

var fixedNow = time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

func newService(repo setting.Repository) *setting.Service {
	return setting.NewService(repo).WithClock(func() time.Time { return fixedNow })
}

func TestService_DefaultsBeforeLoad(t *testing.T) {
	ctx := context.Background()
	service := newService(setting.NewMemoryRepository())

	assert.Equal(t, setting.Defaults(), service.Current())
	assert.False(t, service.MaintenanceMode(ctx))
	assert.True(t, service.RegistrationEnabled(ctx))
	assert.Equal(t, 100, service.MaxNotesPerUser(ctx))

	loaded, err := service.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, setting.Defaults(), loaded)
}

func TestService_ReplacePersists(t *testing.T) {
	ctx := context.Background()
	repo := setting.NewMemoryRepository()
	service := newService(repo)

	next := setting.Defaults()
	next.SiteName = "  Team Notes "
	next.MaintenanceMode = true
	next.RegistrationEnabled = false
	next.MaxNotesPerUser = 3

	saved, err := service.Replace(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, "Team Notes", saved.SiteName)
	assert.Equal(t, fixedNow, saved.UpdatedAt)

	assert.True(t, service.MaintenanceMode(ctx))
	assert.False(t, service.RegistrationEnabled(ctx))
	assert.Equal(t, 3, service.MaxNotesPerUser(ctx))

	// A fresh service over the same store sees the saved document.
	restarted := newService(repo)
	loaded, err := restarted.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestService_ReplaceValidation(t *testing.T) {
	ctx := context.Background()
	service := newService(setting.NewMemoryRepository())

	invalid := setting.Defaults()
	invalid.SiteName = " "
	invalid.MaxNotesPerUser = -1

	_, err := service.Replace(ctx, invalid)
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Len(t, apperr.As(err).Details, 2)
	assert.Equal(t, setting.Defaults(), service.Current(), "rejected documents are not applied")
}

func TestHandler_PutFillsOmittedFieldsWithDefaults(t *testing.T) {
	service := newService(setting.NewMemoryRepository())
	router := setting.NewHandler(service).Routes()

	body := strings.NewReader(`{"siteName":"Lab","maintenanceMode":true}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/", body))

	require.Equal(t, http.StatusOK, recorder.Code)
	current := service.Current()
	assert.Equal(t, "Lab", current.SiteName)
	assert.True(t, current.MaintenanceMode)
	assert.Equal(t, setting.Defaults().SiteDescription, current.SiteDescription)
	assert.Equal(t, setting.Defaults().MaxNotesPerUser, current.MaxNotesPerUser)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
