package ghost

import (
	"encoding/json"
	"fmt"
)

// Record is the raw field mapping of one API record. The well-known typed
// views in types.go can be produced from a Record via Decode.
type Record map[string]any

// ID returns the record's identifier, or "" when absent.
func (r Record) ID() string {
	return r.String("id")
}

// Slug returns the record's URL slug, or "" when absent.
func (r Record) Slug() string {
	return r.String("slug")
}

// String returns the named field as a string, or "" when absent or not a
// string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}

	return ""
}

// Bool returns the named field as a bool, or false when absent or not a
// bool.
func (r Record) Bool(key string) bool {
	v, ok := r[key].(bool)

	return ok && v
}

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]

	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Decode unmarshals the record into a typed view such as Post or Tag.
func (r Record) Decode(into any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	err = json.Unmarshal(raw, into)
	if err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	return nil
}
