// Copyright (c) 2026 NotesAI. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// List endpoints are offset-based: clients send "limit" and "offset" and the
// response carries the echoed window plus the total match count.
package pagination

import (
	"fmt"
	"net/http"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 50
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	Limit  int
	Offset int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int) Meta {
	return Meta{Limit: params.Limit, Offset: params.Offset, Total: total}
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Validation
//
// Unlike a clamping parser, out-of-range or non-numeric values are rejected
// with a VALIDATION_ERROR: limit must be within 1..[MaxLimit], offset >= 0.
func FromRequest(request *http.Request) (Params, error) {
	query := request.URL.Query()
	params := Params{Limit: DefaultLimit}

	if raw := query.Get("limit"); raw != "" {
		limit, ok := convert.ToInt64(raw)
		if !ok || limit < 1 || limit > MaxLimit {
			return Params{}, apperr.ValidationError("Invalid limit", apperr.FieldError{
				Field:   "limit",
				Message: fmt.Sprintf("Must be an integer between 1 and %d", MaxLimit),
			})
		}
		params.Limit = int(limit)
	}

	if raw := query.Get("offset"); raw != "" {
		offset, ok := convert.ToInt64(raw)
		if !ok || offset < 0 {
			return Params{}, apperr.ValidationError("Invalid offset", apperr.FieldError{
				Field:   "offset",
				Message: "Must be a non-negative integer",
			})
		}
		params.Offset = int(offset)
	}

	return params, nil
}

// Window returns the sub-slice of items selected by params.
func Window[T any](items []T, params Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}
