// Package media defines the normalized in-memory representation of a media
// file's technical metadata: flat attribute tracks grouped into general,
// video, audio, and subtitle sections.
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Track is an ordered mapping from attribute name to a scalar Value.
// Attribute names are open-ended and track-type dependent (codec, bit_rate,
// frame_rate_mode, language, ...). Insertion order is preserved through JSON
// round-trips so exports render attributes in the order the probe reported
// them. Values are always leaf scalars, never nested structures.
type Track struct {
	keys   []string
	values map[string]Value
}

// NewTrack returns an empty track.
func NewTrack() *Track {
	return &Track{values: make(map[string]Value)}
}

// Set stores an attribute, appending the key to the iteration order if new.
func (t *Track) Set(key string, value Value) {
	if t.values == nil {
		t.values = make(map[string]Value)
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// SetString stores a string attribute.
func (t *Track) SetString(key, value string) {
	t.Set(key, String(value))
}

// SetNumber stores a numeric attribute.
func (t *Track) SetNumber(key string, value float64) {
	t.Set(key, Number(value))
}

// Get returns the attribute value and whether it is present.
func (t *Track) Get(key string) (Value, bool) {
	if t == nil || t.values == nil {
		return Value{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether the attribute is present.
func (t *Track) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the attribute names in insertion order.
func (t *Track) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of attributes.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Clone returns a deep copy of the track.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := &Track{
		keys:   make([]string, len(t.keys)),
		values: make(map[string]Value, len(t.values)),
	}
	copy(c.keys, t.keys)
	for k, v := range t.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether two tracks hold the same attributes in the same
// order with strictly equal values.
func (t *Track) Equal(other *Track) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if len(t.keys) != len(other.keys) {
		return false
	}
	for i, k := range t.keys {
		if other.keys[i] != k {
			return false
		}
		if t.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the track as a JSON object with keys in insertion
// order.
func (t *Track) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, preserving key order.
func (t *Track) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("track must be a JSON object")
	}

	t.keys = nil
	t.values = make(map[string]Value)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("track key must be a string")
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case string:
			t.Set(key, String(v))
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return fmt.Errorf("track attribute %q: %w", key, err)
			}
			t.Set(key, Number(f))
		case nil:
			// Absent attribute serialized as null: drop it.
		default:
			return fmt.Errorf("track attribute %q must be a string or number", key)
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
