// Copyright (c) 2026 NotesAI. All rights reserved.

package bugreport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cevheri/noteai/internal/system/bugreport"
)

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := bugreport.NewMemoryRepository().WithClock(steppingClock())

	severities := []bugreport.Severity{"low", "critical", "low", "critical", "low"}
	for _, severity := range severities {
		_, err := repo.Create(ctx, bugreport.Draft{Title: "t", Description: "d", Type: bugreport.TypeBug, Severity: severity})
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		reports, total, err := repo.List(ctx, bugreport.Query{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Equal(t, []int64{5, 4, 3, 2, 1}, reportIDs(reports))
	})

	t.Run("filter and window", func(t *testing.T) {
		reports, total, err := repo.List(ctx, bugreport.Query{Severity: "low", Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []int64{3, 1}, reportIDs(reports))
	})

	t.Run("offset past the end", func(t *testing.T) {
		reports, total, err := repo.List(ctx, bugreport.Query{Limit: 10, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, reports)
	})
}

func TestMemoryRepository_IDsAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := bugreport.NewMemoryRepository()

	first, err := repo.Create(ctx, bugreport.Draft{Title: "a", Description: "d"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, bugreport.Draft{Title: "b", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	existed, err := repo.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	third, err := repo.Create(ctx, bugreport.Draft{Title: "c", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, second.ID, third.ID, "ids are max+1")

	third.Title = "mutated"
	stored, err := repo.FindByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", stored.Title)
}

// Every window is a slice of the full filtered ordering, and the total
// ignores the window.
func TestMemoryRepository_ListWindowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		repo := bugreport.NewMemoryRepository().WithClock(steppingClock())

		count := rapid.IntRange(0, 20).Draw(t, "count")
		for i := 0; i < count; i++ {
			severity := rapid.SampledFrom(bugreport.Severities).Draw(t, "severity")
			_, err := repo.Create(ctx, bugreport.Draft{Title: "t", Description: "d", Severity: severity})
			require.NoError(t, err)
		}

		filter := rapid.SampledFrom(append([]bugreport.Severity{""}, bugreport.Severities...)).Draw(t, "filter")
		full, total, err := repo.List(ctx, bugreport.Query{Severity: filter, Limit: 100})
		require.NoError(t, err)
		require.Len(t, full, total)

		limit := rapid.IntRange(1, 25).Draw(t, "limit")
		offset := rapid.IntRange(0, 25).Draw(t, "offset")
		window, windowTotal, err := repo.List(ctx, bugreport.Query{Severity: filter, Limit: limit, Offset: offset})
		require.NoError(t, err)
		assert.Equal(t, total, windowTotal)

		start := min(offset, total)
		end := min(offset+limit, total)
		assert.Equal(t, reportIDs(full[start:end]), reportIDs(window))
	})
}

func reportIDs(reports []*bugreport.BugReport) []int64 {
	out := make([]int64, 0, len(reports))
	for _, report := range reports {
		out = append(out, report.ID)
	}
	return out
}
