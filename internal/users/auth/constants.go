// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultSessionTTL applies when the service is built with a non-positive TTL.
	DefaultSessionTTL = 7 * 24 * time.Hour

	// MinPasswordLength is enforced at registration and bootstrap.
	MinPasswordLength = 8

	// MaxNameLength bounds display names.
	MaxNameLength = 100

	// CodeRegistrationDisabled is returned by Register when settings close sign-ups.
	CodeRegistrationDisabled = "REGISTRATION_DISABLED"
)
