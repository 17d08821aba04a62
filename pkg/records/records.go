// Package records defines the raw row representation shared by the extract,
// validate, and transform stages. A Record is a loosely typed map keyed by
// canonical column name; empty input fields are stored as nil so that
// downstream required-field checks treat "missing" and "empty" identically.
package records

import "fmt"

// Record is one raw row keyed by canonical column name.
type Record map[string]any

// String returns the value for key rendered as a string. Nil and missing
// values render as "". Non-string values (e.g. numbers that slipped through
// an upstream reader) are formatted with fmt.Sprint, which is the defense
// against numeric inference the validator relies on.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
