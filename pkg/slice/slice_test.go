// Copyright (c) 2026 NotesAI. All rights reserved.

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cevheri/noteai/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Equal(t, []string{}, slice.Map([]int(nil), strconv.Itoa))
}

func TestFilter_NeverNil(t *testing.T) {
	got := slice.Filter([]int{1, 3}, func(v int) bool { return v%2 == 0 })
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReduce(t *testing.T) {
	assert.Equal(t, 6, slice.Reduce([]int{1, 2, 3}, 0, func(acc, v int) int { return acc + v }))
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []int64{1, 3}, slice.Without([]int64{1, 2, 3, 2}, 2))
}
