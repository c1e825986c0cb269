// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package admin implements the back-office use cases: user management and the
dashboard aggregates.

Every operation assumes the caller already passed the admin gate; the only
rule enforced here on top of it is the self-delete protection.
*/
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/sec"
	"github.com/cevheri/noteai/internal/system/bugreport"
	"github.com/cevheri/noteai/internal/users/auth"
)

// Service implements the admin use cases over the user, note and bug report
// domains.
type Service struct {
	userRepository       auth.UserRepository
	sessionRepository    auth.SessionRepository
	notes                *notes.Service
	bugReports           *bugreport.Service
	blockAdminSelfDelete bool
	now                  func() time.Time
}

// NewService constructs a new admin [Service].
func NewService(
	users auth.UserRepository,
	sessions auth.SessionRepository,
	notes *notes.Service,
	bugReports *bugreport.Service,
) *Service {
	return &Service{
		userRepository:    users,
		sessionRepository: sessions,
		notes:             notes,
		bugReports:        bugReports,
		now:               time.Now,
	}
}

// WithAdminSelfDeleteBlocked extends the self-delete protection to admins.
func (service *Service) WithAdminSelfDeleteBlocked(block bool) *Service {
	service.blockAdminSelfDelete = block
	return service
}

// WithClock replaces the time source used for activity windows.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # User Management

// ListUsers returns a window of accounts, newest first, and the total match count.
func (service *Service) ListUsers(context context.Context, query auth.UserQuery) ([]*auth.User, int, error) {
	query.Search = strings.TrimSpace(query.Search)
	return service.userRepository.List(context, query)
}

/*
UpdateRole assigns a role from the closed set.

Parameters:
  - context: context.Context
  - requester: *sec.Identity
  - id: string (target account)
  - raw: string

Returns:
  - *auth.User: The updated account
  - error: INVALID_ROLE, NotFound or storage errors
*/
func (service *Service) UpdateRole(context context.Context, requester *sec.Identity, id, raw string) (*auth.User, error) {
	role, err := sec.ParseRole(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	user.UpdatedAt = service.now()
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_role_changed",
		slog.String("user_id", user.ID),
		slog.String("actor_id", requester.UserID),
		slog.String("from", string(previous)),
		slog.String("to", string(role)),
	)
	return user, nil
}

/*
DeleteUser removes an account together with its sessions and owned data.

Description: Existence is checked before the self-delete rule, so a missing
target is NotFound regardless of who asks.

Parameters:
  - context: context.Context
  - requester: *sec.Identity
  - id: string

Returns:
  - *auth.User: The deleted account
  - error: NotFound, SELF_DELETE_NOT_ALLOWED or storage errors
*/
func (service *Service) DeleteUser(context context.Context, requester *sec.Identity, id string) (*auth.User, error) {

	// 1. Target must exist
	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// 2. Self-delete rule
	if err := sec.AuthorizeUserDeletion(requester, user.ID, service.blockAdminSelfDelete); err != nil {
		return nil, err
	}

	// 3. Owned data, sessions, then the account itself
	if err := service.notes.DeleteOwnerData(context, user.ID); err != nil {
		return nil, fmt.Errorf("admin_service_delete_owner_data_failed: %w", err)
	}
	if err := service.sessionRepository.DeleteByUser(context, user.ID); err != nil {
		return nil, fmt.Errorf("admin_service_delete_sessions_failed: %w", err)
	}
	if _, err := service.userRepository.Delete(context, user.ID); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_deleted",
		slog.String("user_id", user.ID),
		slog.String("actor_id", requester.UserID),
	)
	return user, nil
}
