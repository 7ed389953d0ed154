package models

import (
	"bytes"
	"encoding/json"
)

// OptionalString decodes a JSON field that may be absent, null, a string,
// or some other JSON type. Decoding never fails on a type mismatch; the
// mismatch is recorded in Invalid so callers can report which field was
// wrong.
type OptionalString struct {
	Value   string
	Set     bool
	Invalid bool
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	*o = OptionalString{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		o.Invalid = true
		return nil
	}
	o.Value = s
	o.Set = true
	return nil
}

// Ptr returns the string, or nil when the field was absent or null.
func (o OptionalString) Ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}
