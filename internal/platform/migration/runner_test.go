// Copyright (c) 2026 NotesAI. All rights reserved.

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/notes":   "pgx5://u:p@db:5432/notes",
		"postgresql://u:p@db:5432/notes": "pgx5://u:p@db:5432/notes",
		"pgx5://u:p@db/notes":            "pgx5://u:p@db/notes",
		"host=db user=u":                 "host=db user=u",
	}

	for in, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(in), in)
	}
}
