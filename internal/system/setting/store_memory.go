// Copyright (c) 2026 NotesAI. All rights reserved.

package setting

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cevheri/noteai/internal/platform/apperr"
)

// MemoryRepository keeps encoded documents in process memory.
//
// Documents are stored as JSON so callers never share mutable state with
// the store.
type MemoryRepository struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{documents: make(map[string][]byte)}
}

func (repository *MemoryRepository) Get(_ context.Context, key string, target any) error {
	repository.mu.RLock()
	payload, ok := repository.documents[key]
	repository.mu.RUnlock()

	if !ok {
		return apperr.NotFound("Setting")
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("memory_setting_unmarshal_failed: %w", err)
	}
	return nil
}

func (repository *MemoryRepository) Put(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memory_setting_marshal_failed: %w", err)
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.documents[key] = payload
	return nil
}
