package patch

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Change is one column assignment of an UPDATE statement.
type Change struct {
	Column string
	Value  interface{}
}

// Changes is the ordered set of columns whose value differs from the stored row.
type Changes []Change

// HasChanges reports whether an UPDATE is needed at all.
func (c Changes) HasChanges() bool {
	return len(c) > 0
}

// Columns lists the changed column names in order.
func (c Changes) Columns() []string {
	cols := make([]string, len(c))
	for i, ch := range c {
		cols[i] = ch.Column
	}
	return cols
}

// Map returns the changed fields keyed by column.
func (c Changes) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(c))
	for _, ch := range c {
		out[ch.Column] = ch.Value
	}
	return out
}

// Touches reports whether column is among the changes.
func (c Changes) Touches(column string) bool {
	for _, ch := range c {
		if ch.Column == column {
			return true
		}
	}
	return false
}

// Value returns the new value for column.
func (c Changes) Value(column string) (interface{}, bool) {
	for _, ch := range c {
		if ch.Column == column {
			return ch.Value, true
		}
	}
	return nil, false
}

// Normalizer rewrites a text value before comparison and storage.
type Normalizer func(string) string

// Upper normalises to upper case.
func Upper(s string) string { return strings.ToUpper(s) }

// Lower normalises to lower case.
func Lower(s string) string { return strings.ToLower(s) }

// Diff accumulates changes between a stored row and a patch. The first error
// sticks; later calls become no-ops.
type Diff struct {
	changes Changes
	err     error
}

// NewDiff starts an empty diff.
func NewDiff() *Diff {
	return &Diff{}
}

func (d *Diff) add(column string, value interface{}) {
	d.changes = append(d.changes, Change{Column: column, Value: value})
}

func (d *Diff) rejectNull(column string) {
	d.err = appErrors.WithField(appErrors.ErrInvalidField, column, fmt.Sprintf("%s cannot be null", label(column)))
}

// String compares a required text column. Values are trimmed then normalised.
// An explicit null is rejected; a blank value is a missing required field.
func (d *Diff) String(column, current string, f Field[string], norms ...Normalizer) *Diff {
	if d.err != nil || !f.Set {
		return d
	}
	if f.Null {
		d.rejectNull(column)
		return d
	}
	next := normalize(f.Value, norms)
	if next == "" {
		d.err = appErrors.WithField(appErrors.ErrMissingRequired, column, fmt.Sprintf("Missing required fields: %s", column))
		return d
	}
	if next != current {
		d.add(column, next)
	}
	return d
}

// OptionalString compares a nullable text column. Null and blank both clear it.
func (d *Diff) OptionalString(column string, current *string, f Field[string], norms ...Normalizer) *Diff {
	if d.err != nil || !f.Set {
		return d
	}
	var next *string
	if !f.Null {
		if v := normalize(f.Value, norms); v != "" {
			next = &v
		}
	}
	switch {
	case next == nil && current == nil:
	case next == nil:
		d.add(column, nil)
	case current == nil || *current != *next:
		d.add(column, *next)
	}
	return d
}

// Int compares a required integer column.
func (d *Diff) Int(column string, current int, f Field[Int]) *Diff {
	if d.err != nil || !f.Set {
		return d
	}
	if f.Null {
		d.rejectNull(column)
		return d
	}
	if next := int(f.Value); next != current {
		d.add(column, next)
	}
	return d
}

// Bool compares a required boolean column.
func (d *Diff) Bool(column string, current bool, f Field[Bool]) *Diff {
	if d.err != nil || !f.Set {
		return d
	}
	if f.Null {
		d.rejectNull(column)
		return d
	}
	if next := bool(f.Value); next != current {
		d.add(column, next)
	}
	return d
}

// Result returns the accumulated changes or the first error.
func (d *Diff) Result() (Changes, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.changes, nil
}

func normalize(v string, norms []Normalizer) string {
	v = strings.TrimSpace(v)
	for _, n := range norms {
		v = n(v)
	}
	return v
}

func label(column string) string {
	words := strings.Split(column, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}
