// Copyright (c) 2026 NotesAI. All rights reserved.

package notes

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/cevheri/noteai/internal/platform/validate"
	"github.com/cevheri/noteai/pkg/convert"
)

// Selector names the single listing rule applied to a request.
type Selector string

const (
	SelectSearch    Selector = "search"
	SelectFavorites Selector = "favorites"
	SelectRecent    Selector = "recent"
	SelectArchived  Selector = "archived"
	SelectTrash     Selector = "trash"
	SelectCategory  Selector = "category"
	SelectTag       Selector = "tag"
	SelectAll       Selector = "all"
)

const (
	// DefaultRecentLimit applies to "recent" requests that omit limit.
	DefaultRecentLimit = 10

	// StoreRecentLimit applies when a store is handed a non-positive limit.
	StoreRecentLimit = 5

	MaxRecentLimit = 100
)

// Filter is a resolved listing request. Exactly one Selector is active.
type Filter struct {
	Selector   Selector
	Search     string
	CategoryID int64
	TagID      int64
	Limit      int
}

// Search lists live notes whose title or content contains text.
func Search(text string) Filter {
	return Filter{Selector: SelectSearch, Search: text}
}

// Favorites lists live favorite notes.
func Favorites() Filter {
	return Filter{Selector: SelectFavorites}
}

// Recent lists live notes by last update, capped at limit.
func Recent(limit int) Filter {
	return Filter{Selector: SelectRecent, Limit: limit}
}

// Archived lists archived notes that are not in the trash.
func Archived() Filter {
	return Filter{Selector: SelectArchived}
}

// Trash lists soft-deleted notes regardless of the archived flag.
func Trash() Filter {
	return Filter{Selector: SelectTrash}
}

// ByCategory lists live notes in a category.
func ByCategory(categoryID int64) Filter {
	return Filter{Selector: SelectCategory, CategoryID: categoryID}
}

// ByTag lists live notes carrying a tag.
func ByTag(tagID int64) Filter {
	return Filter{Selector: SelectTag, TagID: tagID}
}

// All lists every live note.
func All() Filter {
	return Filter{Selector: SelectAll}
}

/*
ParseFilter resolves query parameters to a [Filter].

Description: Precedence is search, then the filter keyword (favorites,
recent, archived, trash), then categoryId, then tagId, then all. Only the
first present selector applies, but every supplied value must parse.

Parameters:
  - values: url.Values

Returns:
  - Filter: The resolved filter
  - error: ValidationError on unknown keywords or non-numeric ids/limits
*/
func ParseFilter(values url.Values) (Filter, error) {
	validator := &validate.Validator{}

	search := strings.TrimSpace(values.Get("search"))
	keyword := strings.TrimSpace(values.Get("filter"))
	if keyword != "" {
		validator.OneOf(FieldFilter, keyword,
			string(SelectFavorites),
			string(SelectRecent),
			string(SelectArchived),
			string(SelectTrash),
		)
	}

	categoryID, hasCategory := parseID(validator, values, FieldCategoryID)
	tagID, hasTag := parseID(validator, values, FieldTagID)

	limit := DefaultRecentLimit
	if raw := values.Get(FieldLimit); raw != "" {
		parsed, ok := convert.ToInt64(raw)
		validator.Custom(FieldLimit, !ok || parsed < 1 || parsed > MaxRecentLimit, "Must be an integer between 1 and 100")
		limit = int(parsed)
	}

	if err := validator.Err(); err != nil {
		return Filter{}, err
	}

	switch {
	case search != "":
		return Search(search), nil
	case keyword == string(SelectRecent):
		return Recent(limit), nil
	case keyword != "":
		return Filter{Selector: Selector(keyword)}, nil
	case hasCategory:
		return ByCategory(categoryID), nil
	case hasTag:
		return ByTag(tagID), nil
	default:
		return All(), nil
	}
}

func parseID(validator *validate.Validator, values url.Values, field string) (int64, bool) {
	raw := values.Get(field)
	if raw == "" {
		return 0, false
	}
	id, ok := convert.ToInt64(raw)
	validator.Custom(field, !ok, "Must be a numeric id")
	return id, ok
}

// Matches reports whether note belongs to the filtered listing.
//
// Owner scoping is applied separately by the store.
func (filter Filter) Matches(note *Note) bool {
	switch filter.Selector {
	case SelectSearch:
		return note.Live() && (containsFold(note.Title, filter.Search) || containsFold(note.Content, filter.Search))
	case SelectFavorites:
		return note.Live() && note.IsFavorite
	case SelectArchived:
		return note.IsArchived && !note.IsDeleted
	case SelectTrash:
		return note.IsDeleted
	case SelectCategory:
		return note.Live() && note.CategoryID != nil && *note.CategoryID == filter.CategoryID
	case SelectTag:
		return note.Live() && note.HasTag(filter.TagID)
	default:
		return note.Live()
	}
}

// EffectiveLimit is the cap applied to "recent"; other selectors are uncapped (0).
func (filter Filter) EffectiveLimit() int {
	if filter.Selector != SelectRecent {
		return 0
	}
	if filter.Limit <= 0 {
		return StoreRecentLimit
	}
	return filter.Limit
}

// Arrange orders matches in place and applies the recent cap.
//
// Recent: updatedAt descending, ties by id descending. Everything else: id ascending.
func (filter Filter) Arrange(matches []*Note) []*Note {
	if filter.Selector == SelectRecent {
		sort.Slice(matches, func(i, j int) bool {
			if !matches[i].UpdatedAt.Equal(matches[j].UpdatedAt) {
				return matches[i].UpdatedAt.After(matches[j].UpdatedAt)
			}
			return matches[i].ID > matches[j].ID
		})
	} else {
		sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	}

	if limit := filter.EffectiveLimit(); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// containsFold is a Unicode case-folded substring test.
func containsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

// fold case-folds s. A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
