// Copyright (c) 2026 NotesAI. All rights reserved.

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	requestutil "github.com/cevheri/noteai/internal/platform/request"
	"github.com/cevheri/noteai/internal/platform/sec"
)

func withParam(request *http.Request, key, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestInt64Param(t *testing.T) {
	request := withParam(httptest.NewRequest(http.MethodGet, "/notes/12", nil), "id", "12")
	id, err := requestutil.Int64Param(request, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	request = withParam(httptest.NewRequest(http.MethodGet, "/notes/abc", nil), "id", "abc")
	_, err = requestutil.Int64Param(request, "id")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Work"}`))
	require.NoError(t, requestutil.DecodeJSON(request, &target))
	assert.Equal(t, "Work", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.True(t, apperr.HasCode(requestutil.DecodeJSON(request, &target), apperr.CodeValidation))
}

func TestRequiredIdentity(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := requestutil.RequiredIdentity(request)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	identity := &sec.Identity{UserID: "u1", Role: sec.RoleUser}
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), identity))
	got, err := requestutil.RequiredIdentity(request)
	require.NoError(t, err)
	assert.Same(t, identity, got)

	userID, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
