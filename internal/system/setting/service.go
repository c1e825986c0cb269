// Copyright (c) 2026 NotesAI. All rights reserved.

package setting

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
)

// Service serves the settings document from memory and writes through to
// the [Repository].
//
// It implements middleware.MaintenanceSwitch, auth.RegistrationPolicy and
// notes.QuotaPolicy.
type Service struct {
	repository Repository
	current    atomic.Pointer[Settings]
	now        func() time.Time
}

// NewService constructs a [Service] serving [Defaults] until [Service.Load].
func NewService(repository Repository) *Service {
	service := &Service{repository: repository, now: time.Now}
	defaults := Defaults()
	service.current.Store(&defaults)
	return service
}

// WithClock replaces the time source used for updatedAt.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

/*
Load reads the stored document into the cache.

Description: A missing document keeps the defaults. Fields absent from an
older stored document also keep their defaults.

Parameters:
  - context: context.Context

Returns:
  - Settings: The settings now in effect
  - error: Storage failures
*/
func (service *Service) Load(context context.Context) (Settings, error) {
	loaded := Defaults()
	if err := service.repository.Get(context, Key, &loaded); err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return service.Current(), fmt.Errorf("setting_service_load_failed: %w", err)
		}
		loaded = Defaults()
	}

	service.current.Store(&loaded)
	return loaded, nil
}

// Current returns a copy of the settings in effect.
func (service *Service) Current() Settings {
	return *service.current.Load()
}

/*
Replace validates and stores a complete settings document.

Parameters:
  - context: context.Context
  - settings: Settings (updatedAt is assigned here)

Returns:
  - Settings: The stored document
  - error: ValidationError or storage errors
*/
func (service *Service) Replace(context context.Context, settings Settings) (Settings, error) {
	settings.normalize()
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	settings.UpdatedAt = service.now().UTC()
	if err := service.repository.Put(context, Key, settings); err != nil {
		return Settings{}, err
	}
	service.current.Store(&settings)

	ctxutil.GetLogger(context).InfoContext(context, "settings_updated",
		slog.Bool("maintenance_mode", settings.MaintenanceMode),
		slog.Bool("registration_enabled", settings.RegistrationEnabled),
		slog.Int("max_notes_per_user", settings.MaxNotesPerUser),
	)
	return settings, nil
}

// # Policies

// MaintenanceMode reports the maintenance switch.
func (service *Service) MaintenanceMode(context.Context) bool {
	return service.current.Load().MaintenanceMode
}

// RegistrationEnabled reports whether sign-ups are open.
func (service *Service) RegistrationEnabled(context.Context) bool {
	return service.current.Load().RegistrationEnabled
}

// MaxNotesPerUser reports the per-owner note cap; 0 is unlimited.
func (service *Service) MaxNotesPerUser(context.Context) int {
	return service.current.Load().MaxNotesPerUser
}
