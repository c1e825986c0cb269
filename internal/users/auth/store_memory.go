// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/pagination"
	"github.com/cevheri/noteai/pkg/pointer"
)

// # User Repository

// MemoryUserRepository keeps accounts in process memory.
//
// It is the default backend for development and tests. Stored values are
// copied on the way in and out so callers never share a record.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(user *User) *User {
	clone := *user
	clone.Avatar = pointer.Clone(user.Avatar)
	return &clone
}

// fold case-folds s. A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func (repository *MemoryUserRepository) emailKey(email string) string {
	return fold(strings.TrimSpace(email))
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return cloneUser(user), nil
}

func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byEmail[repository.emailKey(email)]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return cloneUser(repository.byID[id]), nil
}

func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := repository.emailKey(user.Email)
	if _, taken := repository.byEmail[key]; taken {
		return apperr.Conflict("Email is already registered")
	}

	repository.byID[user.ID] = cloneUser(user)
	repository.byEmail[key] = user.ID
	return nil
}

func (repository *MemoryUserRepository) Update(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}

	stored.Name = user.Name
	stored.Avatar = pointer.Clone(user.Avatar)
	stored.Role = user.Role
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (repository *MemoryUserRepository) Delete(_ context.Context, id string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[id]
	if !ok {
		return false, nil
	}

	delete(repository.byEmail, repository.emailKey(user.Email))
	delete(repository.byID, id)
	return true, nil
}

func (repository *MemoryUserRepository) List(_ context.Context, query UserQuery) ([]*User, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	needle := fold(strings.TrimSpace(query.Search))
	matches := make([]*User, 0, len(repository.byID))
	for _, user := range repository.byID {
		if needle != "" &&
			!strings.Contains(fold(user.Name), needle) &&
			!strings.Contains(fold(user.Email), needle) {
			continue
		}
		matches = append(matches, cloneUser(user))
	}

	// Newest first; ids break ties so the order is stable.
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})

	window := pagination.Window(matches, pagination.Params{Limit: query.Limit, Offset: query.Offset})
	return window, len(matches), nil
}

func (repository *MemoryUserRepository) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	total := 0
	for _, user := range repository.byID {
		if !user.CreatedAt.Before(since) {
			total++
		}
	}
	return total, nil
}

// # Session Repository

// MemorySessionRepository keeps sessions in process memory.
//
// Expired sessions are never swept; the resolver ignores them at read time.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionRepository creates an empty in-memory session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]Session)}
}

func (repository *MemorySessionRepository) Create(_ context.Context, session *Session) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.sessions[session.ID] = *session
	return nil
}

func (repository *MemorySessionRepository) FindByID(_ context.Context, id string) (*Session, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	session, ok := repository.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (repository *MemorySessionRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.sessions, id)
	return nil
}

func (repository *MemorySessionRepository) DeleteByUser(_ context.Context, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, session := range repository.sessions {
		if session.UserID == userID {
			delete(repository.sessions, id)
		}
	}
	return nil
}

func (repository *MemorySessionRepository) CountActiveUsers(_ context.Context, now time.Time) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	active := make(map[string]struct{})
	for _, session := range repository.sessions {
		if !session.Expired(now) {
			active[session.UserID] = struct{}{}
		}
	}
	return len(active), nil
}
