// Copyright (c) 2026 NotesAI. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/respond"
	"github.com/cevheri/noteai/internal/platform/sec"
)

// IdentityResolver maps a raw session credential to an identity.
//
// # Contract
//
// Implementations never fail: a missing, expired or unreadable session is
// reported as nil, and infrastructure faults are logged by the implementation.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, credential string) *sec.Identity
}

// Credential extracts the session credential from a request.
//
// The session cookie wins over an `Authorization: Bearer` header when both
// are present. A malformed Authorization header yields "".
func Credential(request *http.Request) string {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, found := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, constants.AuthSchemeBearer) {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the request's session, if any.
//
// # Flow
//  1. Extract the credential (cookie, then bearer header).
//  2. If absent, request proceeds as anonymous.
//  3. Resolve it via [IdentityResolver]; nil also proceeds as anonymous.
//  4. Inject [*sec.Identity] and the raw credential into the request context.
//
// Rejection is left to [RequireAuth] and [RequireRoles], so public routes stay
// reachable with a stale cookie.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			credential := Credential(request)
			if credential == "" {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithCredential(request.Context(), credential)

			// ── 2. Session Resolution ─────────────────────────────────────────
			identity := resolver.ResolveIdentity(ctx, credential)
			if identity == nil {
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if trace := traceFrom(ctx); trace != nil {
				trace.UserID = identity.UserID
			}
			ctx = ctxutil.WithAuthUser(ctx, identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return RequireRoles(sec.AnyRole, "")(next)
}

// RequireRoles blocks requests whose identity is outside the allowed role set.
//
// # Flow
//  1. No identity in context: HTTP 401 UNAUTHORIZED.
//  2. Role not a member of allowed: HTTP 403, using denyCode when non-empty.
//
// It implies [RequireAuth] so you don't need to mount both.
func RequireRoles(allowed sec.RoleSet, denyCode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			err := sec.Authorize(ctxutil.GetAuthUser(request.Context()), allowed)
			if err != nil {
				if denyCode != "" && apperr.HasCode(err, apperr.CodeForbidden) {
					err = apperr.As(err).WithCode(denyCode)
				}
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAdmin gates back-office routes to {admin, super_admin}.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRoles(sec.AdminRoles, apperr.CodeAdminAccessRequired)(next)
}

// # Maintenance Mode

// MaintenanceSwitch reports whether the application is in maintenance mode.
type MaintenanceSwitch interface {
	MaintenanceMode(ctx context.Context) bool
}

// Maintenance answers 503 to non-admin callers while maintenance mode is on.
//
// Mount it on the user-facing route groups only; auth and admin routes must
// stay reachable so an operator can switch the mode off again.
func Maintenance(sw MaintenanceSwitch) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if sw.MaintenanceMode(request.Context()) && !sec.IsAdmin(ctxutil.GetAuthUser(request.Context())) {
				respond.Error(writer, request, apperr.ServiceUnavailable("The service is under maintenance. Please try again later."))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
