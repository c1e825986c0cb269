// Copyright (c) 2026 NotesAI. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping checks every constructor maps to its HTTP status and code.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Note"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("x"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"forbidden", apperr.Forbidden("x"), http.StatusForbidden, apperr.CodeForbidden},
		{"conflict", apperr.Conflict("x"), http.StatusConflict, apperr.CodeConflict},
		{"validation", apperr.ValidationError("x"), http.StatusBadRequest, apperr.CodeValidation},
		{"unprocessable", apperr.Unprocessable("x"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
		{"unavailable", apperr.ServiceUnavailable("x"), http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestWithCode_DoesNotMutateOriginal verifies WithCode returns an independent copy.
*/
func TestWithCode_DoesNotMutateOriginal(t *testing.T) {
	base := apperr.Forbidden("nope")
	specific := base.WithCode(apperr.CodeSelfDeleteNotAllowed)

	assert.Equal(t, apperr.CodeForbidden, base.Code)
	assert.Equal(t, apperr.CodeSelfDeleteNotAllowed, specific.Code)
	assert.Equal(t, http.StatusForbidden, specific.HTTPStatus)
}

/*
TestAs_WrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Tag"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "Tag not found", ae.Message)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeNotFound))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestInternal_HidesCause ensures the client message never echoes the cause.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}
