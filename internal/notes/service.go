// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"

	"github.com/cevheri/noteai/internal/platform/apperr"
)

// # Service Layer

// QuotaPolicy reports the per-owner note cap; 0 means unlimited.
type QuotaPolicy interface {
	MaxNotesPerUser(ctx context.Context) int
}

type unlimited struct{}

func (unlimited) MaxNotesPerUser(context.Context) int { return 0 }

// Service enforces ownership, reference and quota rules over the stores.
type Service struct {
	noteRepository     NoteRepository
	categoryRepository CategoryRepository
	tagRepository      TagRepository
	quota              QuotaPolicy
}

// NewService constructs a new [Service] with its repositories.
func NewService(notes NoteRepository, categories CategoryRepository, tags TagRepository) *Service {
	return &Service{
		noteRepository:     notes,
		categoryRepository: categories,
		tagRepository:      tags,
		quota:              unlimited{},
	}
}

// WithQuotaPolicy caps note creation per owner. A nil policy removes the cap.
func (service *Service) WithQuotaPolicy(policy QuotaPolicy) *Service {
	if policy == nil {
		policy = unlimited{}
	}
	service.quota = policy
	return service
}

// authorizeOwner rejects a caller that does not own the loaded resource.
func authorizeOwner(ownerID, userID, resource string) error {
	if ownerID != userID {
		return apperr.Forbidden("You do not have access to this " + resource)
	}
	return nil
}

// # Administration

/*
DeleteOwnerData hard-deletes every note, category and tag of userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures
*/
func (service *Service) DeleteOwnerData(context context.Context, userID string) error {
	if err := service.noteRepository.DeleteByOwner(context, userID); err != nil {
		return err
	}
	if err := service.tagRepository.DeleteByOwner(context, userID); err != nil {
		return err
	}
	return service.categoryRepository.DeleteByOwner(context, userID)
}
