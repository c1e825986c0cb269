// Copyright (c) 2026 NotesAI. All rights reserved.

// Package sec provides cryptographic primitives, session tokens, and the role gate.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing,
// Authorization decisions) from the domain logic. Domain packages depend on it,
// never the other way around.
package sec

// Identity is the request-scoped view of a resolved session.
//
// It is what middleware stores in the request context after the session
// resolver succeeds; handlers never see the session token itself.
type Identity struct {
	UserID    string   `json:"id"`
	SessionID string   `json:"-"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
}
