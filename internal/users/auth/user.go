// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session), the session resolver used
by the HTTP middleware, and the account lifecycle (register, login, logout,
profile edit).

# Architecture

Sessions are server-side records; clients hold a signed token that only carries
the session id. Resolution is therefore a two-step lookup (session, then user)
and every failure along the way resolves to "anonymous".
*/
package auth

import (
	"time"

	"github.com/cevheri/noteai/internal/platform/sec"
)

// # Domain Entities

// User represents a registered NotesAI account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Name         string       `json:"name"`
	Avatar       *string      `json:"avatar"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity projects the user onto the request-scoped identity for a session.
func (user *User) Identity(sessionID string) *sec.Identity {
	return &sec.Identity{
		UserID:    user.ID,
		SessionID: sessionID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}
}

// Session represents a server-side login session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now (expiresAt <= now).
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAvatar   = "avatar"
	FieldRole     = "role"
)
