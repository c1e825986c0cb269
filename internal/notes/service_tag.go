// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
	"github.com/cevheri/noteai/internal/platform/ctxutil"
	"github.com/cevheri/noteai/internal/platform/validate"
	"github.com/cevheri/noteai/pkg/slug"
)

// TagInput carries the fields of a new tag.
type TagInput struct {
	Name  string
	Color string
}

// ListTags returns the caller's tags.
func (service *Service) ListTags(context context.Context, userID string) ([]*Tag, error) {
	return service.tagRepository.ListByOwner(context, userID)
}

// tagSlug is the ASCII slug of name, or its case fold when nothing ASCII survives.
func tagSlug(name string) string {
	if s := slug.From(name); s != "" {
		return s
	}
	return fold(name)
}

/*
CreateTag creates a tag for the caller.

Description: Names that slug identically ("Work", "work!") collide per owner.

Parameters:
  - context: context.Context
  - userID: string
  - input: TagInput

Returns:
  - *Tag: The created tag
  - error: ValidationError, Conflict or storage errors
*/
func (service *Service) CreateTag(context context.Context, userID string, input TagInput) (*Tag, error) {
	name := strings.TrimSpace(input.Name)
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = constants.DefaultTagColor
	}

	err := (&validate.Validator{}).
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxLabelLength).
		HexColor(FieldColor, color).
		Err()
	if err != nil {
		return nil, err
	}

	tag, err := service.tagRepository.Create(context, TagDraft{
		UserID: userID,
		Name:   name,
		Slug:   tagSlug(name),
		Color:  color,
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "tag_created", slog.Int64("tag_id", tag.ID))
	return tag, nil
}

// DeleteTag removes a tag the caller owns and prunes it from every note.
func (service *Service) DeleteTag(context context.Context, userID string, id int64) error {
	tag, err := service.tagRepository.FindByID(context, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(tag.UserID, userID, "tag"); err != nil {
		return err
	}

	existed, err := service.tagRepository.Delete(context, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperr.NotFound("Tag")
	}
	return nil
}
