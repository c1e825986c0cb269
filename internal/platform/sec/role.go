// Copyright (c) 2026 NotesAI. All rights reserved.

package sec

import (
	"strings"

	"github.com/cevheri/noteai/internal/platform/apperr"
)

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: every mutation site must go through [ParseRole].
type UserRole string

const (
	// Default role for standard registered users
	RoleUser UserRole = "user"

	// Back-office access: users, bug reports, analytics, settings
	RoleAdmin UserRole = "admin"

	// Back-office access plus self-delete protection
	RoleSuperAdmin UserRole = "super_admin"
)

// CodeInvalidRole is the validation code returned for values outside the role set.
const CodeInvalidRole = "INVALID_ROLE"

// AllRoles lists every valid role in display order.
var AllRoles = []UserRole{RoleUser, RoleAdmin, RoleSuperAdmin}

// IsValid reports whether r belongs to the closed role set.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// ParseRole validates a raw role string against the closed role set.
func ParseRole(raw string) (UserRole, error) {
	role := UserRole(raw)
	if !role.IsValid() {
		names := make([]string, len(AllRoles))
		for i, r := range AllRoles {
			names[i] = string(r)
		}
		return "", apperr.ValidationError(
			"Invalid role. Must be one of: "+strings.Join(names, ", "),
			apperr.FieldError{Field: "role", Message: "Must be one of: " + strings.Join(names, ", ")},
		).WithCode(CodeInvalidRole)
	}
	return role, nil
}

// # Role Sets

// RoleSet is an unordered set of roles accepted by a gate.
//
// Roles are compared by membership, never by rank: {admin, super_admin}
// are equivalent for admin routes.
type RoleSet []UserRole

var (
	// AdminRoles gates every back-office route.
	AdminRoles = RoleSet{RoleAdmin, RoleSuperAdmin}

	// AnyRole accepts every authenticated account.
	AnyRole = RoleSet{RoleUser, RoleAdmin, RoleSuperAdmin}
)

// Contains reports whether role is a member of the set.
func (set RoleSet) Contains(role UserRole) bool {
	for _, member := range set {
		if member == role {
			return true
		}
	}
	return false
}

// # Role Gate

/*
Authorize decides whether an already-resolved identity may pass a gate.

Parameters:
  - identity: *Identity (nil means the resolver found no session)
  - allowed: RoleSet

Returns:
  - error: nil on allow, Unauthorized for a missing identity, Forbidden otherwise
*/
func Authorize(identity *Identity, allowed RoleSet) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !allowed.Contains(identity.Role) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// IsAdmin reports whether the identity belongs to the admin role set.
func IsAdmin(identity *Identity) bool {
	return identity != nil && AdminRoles.Contains(identity.Role)
}

/*
AuthorizeUserDeletion applies the self-delete rule on top of an admin gate.

A super_admin may never delete their own account. When blockAdmins is set the
rule extends to ordinary admins as well.

Parameters:
  - requester: *Identity
  - targetID: string
  - blockAdmins: bool

Returns:
  - error: Forbidden with [apperr.CodeSelfDeleteNotAllowed] when denied
*/
func AuthorizeUserDeletion(requester *Identity, targetID string, blockAdmins bool) error {
	if err := Authorize(requester, AdminRoles); err != nil {
		return err
	}

	if requester.UserID != targetID {
		return nil
	}

	switch {
	case requester.Role == RoleSuperAdmin:
		return apperr.Forbidden("Super admin cannot delete themselves").WithCode(apperr.CodeSelfDeleteNotAllowed)
	case blockAdmins && requester.Role == RoleAdmin:
		return apperr.Forbidden("Admins cannot delete themselves").WithCode(apperr.CodeSelfDeleteNotAllowed)
	default:
		return nil
	}
}
