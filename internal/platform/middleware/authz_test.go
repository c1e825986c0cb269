// Copyright (c) 2026 NotesAI. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/middleware"
	"github.com/cevheri/noteai/internal/platform/sec"
)

// fakeResolver maps known credentials to identities.
type fakeResolver map[string]*sec.Identity

func (resolver fakeResolver) ResolveIdentity(_ context.Context, credential string) *sec.Identity {
	return resolver[credential]
}

type fakeSwitch bool

func (sw fakeSwitch) MaintenanceMode(context.Context) bool { return bool(sw) }

var identities = fakeResolver{
	"user-token":  {UserID: "u1", Role: sec.RoleUser},
	"admin-token": {UserID: "u2", Role: sec.RoleAdmin},
	"super-token": {UserID: "u3", Role: sec.RoleSuperAdmin},
}

func newRouter(maintenance bool) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(identities))

	ok := func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetAuthUser(request.Context())
		if identity == nil {
			_, _ = writer.Write([]byte("anonymous"))
			return
		}
		_, _ = writer.Write([]byte(identity.UserID))
	}

	router.Get("/public", ok)
	router.With(middleware.RequireAuth).Get("/private", ok)
	router.With(middleware.RequireAdmin).Get("/admin", ok)
	router.With(middleware.RequireAuth, middleware.Maintenance(fakeSwitch(maintenance))).Get("/notes", ok)
	return router
}

func do(t *testing.T, handler http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(request)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func bearer(token string) func(*http.Request) {
	return func(request *http.Request) {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestCredential_CookieWinsOverBearer(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "from-cookie"})
	request.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", middleware.Credential(request))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "bearer from-header")
	assert.Equal(t, "from-header", middleware.Credential(request))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", middleware.Credential(request))
}

func TestAuthenticate_UnknownCredentialIsAnonymous(t *testing.T) {
	recorder := do(t, newRouter(false), "/public", bearer("stale"))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

func TestRequireAuth(t *testing.T) {
	router := newRouter(false)

	recorder := do(t, router, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, apperr.CodeUnauthorized, errorCode(t, recorder))

	recorder = do(t, router, "/private", bearer("user-token"))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "u1", recorder.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	router := newRouter(false)

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"anonymous", "", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"expired session", "stale", http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"plain user", "user-token", http.StatusForbidden, apperr.CodeAdminAccessRequired},
		{"admin", "admin-token", http.StatusOK, ""},
		{"super admin", "super-token", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate func(*http.Request)
			if tt.token != "" {
				mutate = bearer(tt.token)
			}
			recorder := do(t, router, "/admin", mutate)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, recorder))
			}
		})
	}
}

func TestMaintenance(t *testing.T) {
	router := newRouter(true)

	recorder := do(t, router, "/notes", bearer("user-token"))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, apperr.CodeServiceUnavailable, errorCode(t, recorder))

	recorder = do(t, router, "/notes", bearer("admin-token"))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, newRouter(false), "/notes", bearer("user-token"))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
