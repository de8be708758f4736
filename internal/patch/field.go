// Package patch implements partial-update reconciliation: tri-state optional
// fields decoded from request bodies and a diff that keeps only the columns whose
// value actually changes.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Field is an optional value that distinguishes "omitted" (Set=false) from
// "explicitly null" (Set=true, Null=true) and "set to a value".
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a field carrying v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns an explicitly nulled field.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// UnmarshalJSON is only invoked for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders omitted and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}

// Int accepts JSON numbers and numeric strings ("30", " 30 ").
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f == float64(int(f)) {
			*i = Int(int(f))
			return nil
		}
		return fmt.Errorf("expected an integer, got %s", string(data))
	}
	*i = Int(n)
	return nil
}

// Bool accepts true/false, 0/1 and their quoted forms.
type Bool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bool) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("expected a boolean, got %s", string(data))
	}
	return nil
}
