// Copyright (c) 2026 NotesAI. All rights reserved.

package notes_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevheri/noteai/internal/notes"
	"github.com/cevheri/noteai/internal/platform/apperr"
)

func TestParseFilter_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  notes.Filter
	}{
		{"nothing", "", notes.All()},
		{"search beats everything", "search=hello&filter=trash&categoryId=1&tagId=2", notes.Search("hello")},
		{"blank search is ignored", "search=%20%20&filter=favorites", notes.Favorites()},
		{"keyword beats category", "filter=archived&categoryId=1", notes.Archived()},
		{"trash", "filter=trash", notes.Trash()},
		{"recent default limit", "filter=recent", notes.Recent(notes.DefaultRecentLimit)},
		{"recent explicit limit", "filter=recent&limit=3", notes.Recent(3)},
		{"category beats tag", "categoryId=4&tagId=2", notes.ByCategory(4)},
		{"tag", "tagId=2", notes.ByTag(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filter, err := notes.ParseFilter(values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter)
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	for _, query := range []string{
		"filter=starred",
		"categoryId=abc",
		"tagId=1.5",
		"filter=recent&limit=ten",
		"filter=recent&limit=0",
		"filter=recent&limit=101",
		// Values are checked even when a higher selector wins.
		"search=hello&categoryId=abc",
	} {
		t.Run(query, func(t *testing.T) {
			values, err := url.ParseQuery(query)
			require.NoError(t, err)

			_, err = notes.ParseFilter(values)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	category := int64(7)
	live := &notes.Note{Title: "Groceries", Content: "Buy MILK", CategoryID: &category, Tags: []int64{3}}
	favorite := &notes.Note{Title: "Idea", IsFavorite: true}
	archived := &notes.Note{Title: "Old", IsArchived: true, IsFavorite: true}
	trashed := &notes.Note{Title: "Gone", IsArchived: true, IsDeleted: true}

	assert.True(t, notes.All().Matches(live))
	assert.False(t, notes.All().Matches(archived))
	assert.False(t, notes.All().Matches(trashed))

	assert.True(t, notes.Search("milk").Matches(live))
	assert.True(t, notes.Search("grocer").Matches(live))
	assert.False(t, notes.Search("old").Matches(archived))

	assert.True(t, notes.Favorites().Matches(favorite))
	assert.False(t, notes.Favorites().Matches(archived))

	assert.True(t, notes.Archived().Matches(archived))
	assert.False(t, notes.Archived().Matches(trashed))

	// The archived flag is irrelevant in the trash.
	assert.True(t, notes.Trash().Matches(trashed))
	assert.False(t, notes.Trash().Matches(archived))

	assert.True(t, notes.ByCategory(7).Matches(live))
	assert.False(t, notes.ByCategory(8).Matches(live))
	assert.True(t, notes.ByTag(3).Matches(live))
	assert.False(t, notes.ByTag(4).Matches(favorite))
}

func TestFilter_SearchFoldsUnicode(t *testing.T) {
	note := &notes.Note{Title: "Straße", Content: "ÉCOLE"}

	assert.True(t, notes.Search("STRASSE").Matches(note))
	assert.True(t, notes.Search("école").Matches(note))
}
