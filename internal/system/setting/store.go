// Copyright (c) 2026 NotesAI. All rights reserved.

package setting

import (
	"context"
)

// Repository persists JSON documents by key.
type Repository interface {

	// Get decodes the document stored under key into target, or returns NotFound.
	Get(context context.Context, key string, target any) error

	// Put encodes value and stores it under key, replacing any previous document.
	Put(context context.Context, key string, value any) error
}
