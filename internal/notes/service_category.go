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
)

// CategoryInput carries the fields of a new category.
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// ListCategories returns the caller's categories.
func (service *Service) ListCategories(context context.Context, userID string) ([]*Category, error) {
	return service.categoryRepository.ListByOwner(context, userID)
}

/*
CreateCategory creates a category for the caller.

Parameters:
  - context: context.Context
  - userID: string
  - input: CategoryInput (Color and Icon default when blank)

Returns:
  - *Category: The created category
  - error: ValidationError or storage errors
*/
func (service *Service) CreateCategory(context context.Context, userID string, input CategoryInput) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = constants.DefaultCategoryColor
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = constants.DefaultCategoryIcon
	}

	err := (&validate.Validator{}).
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxLabelLength).
		HexColor(FieldColor, color).
		MaxLen(FieldIcon, icon, MaxLabelLength).
		Err()
	if err != nil {
		return nil, err
	}

	category, err := service.categoryRepository.Create(context, CategoryDraft{
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "category_created", slog.Int64("category_id", category.ID))
	return category, nil
}

/*
DeleteCategory removes a category the caller owns. Notes that referenced it
survive with a null categoryId.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64

Returns:
  - error: NotFound, Forbidden or storage errors
*/
func (service *Service) DeleteCategory(context context.Context, userID string, id int64) error {
	category, err := service.categoryRepository.FindByID(context, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(category.UserID, userID, "category"); err != nil {
		return err
	}

	existed, err := service.categoryRepository.Delete(context, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperr.NotFound("Category")
	}
	return nil
}
