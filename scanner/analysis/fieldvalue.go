package analysis

import (
	"encoding/json"
	"strings"
)

// FieldValue is a scalar-or-sequence string field. External parse
// results may deliver either shape for the same key; it is normalized
// once at ingestion and treated as a sequence downstream.
type FieldValue struct {
	values []string
	scalar bool
}

// Scalar builds a FieldValue holding a single string
func Scalar(s string) FieldValue {
	return FieldValue{values: []string{s}, scalar: true}
}

// Sequence builds a FieldValue holding a list of strings
func Sequence(values ...string) FieldValue {
	return FieldValue{values: values}
}

// Values returns the entries with blank strings trimmed out.
// Never returns nil.
func (f FieldValue) Values() []string {
	out := []string{}
	for _, v := range f.values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// First returns the first non-blank entry, or an empty string
func (f FieldValue) First() string {
	values := f.Values()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// IsEmpty reports whether the field holds no non-blank entry
func (f FieldValue) IsEmpty() bool {
	return len(f.Values()) == 0
}

// UnmarshalJSON accepts a string, a string list, or null
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FieldValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Scalar(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = Sequence(list...)
	return nil
}

// MarshalJSON always emits the sequence form
func (f FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Values())
}
