// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserQuery narrows [UserRepository.List].
type UserQuery struct {
	// Search matches name or email, case-insensitively. Empty matches all.
	Search string
	Limit  int
	Offset int
}

// UserRepository defines the data access contract for user accounts.
//
// Lookups of a missing account return an [apperr.CodeNotFound] error.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email (case-insensitive).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict when the email is taken, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists the mutable fields (name, avatar, role) and updatedAt.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: NotFound or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: Whether the account existed
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) (bool, error)

	/*
		List returns accounts ordered by createdAt descending, plus the total match count.

		Parameters:
		  - context: context.Context
		  - query: UserQuery

		Returns:
		  - []*User: The requested window
		  - int: Total matches before windowing
		  - error: Retrieval failures
	*/
	List(context context.Context, query UserQuery) ([]*User, int, error)

	/*
		CountCreatedSince counts accounts created at or after since.

		Parameters:
		  - context: context.Context
		  - since: time.Time

		Returns:
		  - int: Matching accounts
		  - error: Retrieval failures
	*/
	CountCreatedSince(context context.Context, since time.Time) (int, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for login sessions.
//
// Expiry is checked by the caller at read time; repositories may still hold
// expired records.
type SessionRepository interface {

	/*
		Create persists a new session.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByID returns the session with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Session: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Session, error)

	/*
		Delete removes one session. Deleting a missing session is not an error.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		DeleteByUser removes every session belonging to userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByUser(context context.Context, userID string) error

	/*
		CountActiveUsers counts distinct users holding a session that is unexpired at now.

		Parameters:
		  - context: context.Context
		  - now: time.Time

		Returns:
		  - int: Distinct users
		  - error: Retrieval failures
	*/
	CountActiveUsers(context context.Context, now time.Time) (int, error)
}
