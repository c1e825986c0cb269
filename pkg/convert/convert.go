// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] for query-string parsing. Two flavours exist: the fault-tolerant
helpers (ToBool, ToIntD) that collapse malformed input to a default, and the
strict helpers (ToInt64) that report whether parsing succeeded.

Use the strict flavour whenever malformed input must surface as a validation error.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToInt64 parses a base-10 signed integer, reporting whether it succeeded.
func ToInt64(str string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {

	// If the string is empty, return false
	if s == "" {
		return false
	}

	// Try to parse the string as a boolean
	v, _ := strconv.ParseBool(s)
	return v
}
