// Copyright (c) 2026 NotesAI. All rights reserved.

/*
Package nullable provides a tri-state JSON field for partial updates.

A plain pointer cannot distinguish between a field that was omitted and a
field explicitly set to null. [Value] records both:

	{}                  -> Set=false
	{"categoryId":null} -> Set=true, Null=true
	{"categoryId":3}    -> Set=true, Null=false, V=3
*/
package nullable

import (
	"bytes"
	"encoding/json"
)

// Value is a JSON field that remembers whether it was present and whether it was null.
type Value[T any] struct {
	V    T
	Set  bool
	Null bool
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{V: v, Set: true}
}

// Null returns a present, null value.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Ptr returns nil for null, or a pointer to the value.
func (value Value[T]) Ptr() *T {
	if value.Null {
		return nil
	}
	v := value.V
	return &v
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// It is only invoked when the key is present, which is what sets Set.
func (value *Value[T]) UnmarshalJSON(data []byte) error {
	value.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		value.Null = true
		var zero T
		value.V = zero
		return nil
	}
	value.Null = false
	return json.Unmarshal(data, &value.V)
}

// MarshalJSON implements [json.Marshaler].
func (value Value[T]) MarshalJSON() ([]byte, error) {
	if !value.Set || value.Null {
		return []byte("null"), nil
	}
	return json.Marshal(value.V)
}
