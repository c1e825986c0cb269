// Copyright (c) 2026 NotesAI. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cevheri/noteai/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Work":            "work",
		"Café Notes":      "cafe-notes",
		"  to--do!! list": "to-do-list",
		"Ünïcödé":         "unicode",
		"日本":              "",
		"v2.0 release":    "v2-0-release",
	}

	for in, want := range tests {
		assert.Equal(t, want, slug.From(in), in)
	}
}
