package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// HeaderInfo is the free-form document metadata emitted by the model. The
// field names are whatever the model chose, so this is an open string-keyed
// mapping rather than a fixed record. Key insertion order is preserved so the
// fields display in the order the model listed them.
type HeaderInfo struct {
	keys   []string
	values map[string]string
}

// Set adds or replaces a field, appending new keys in insertion order.
func (h *HeaderInfo) Set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, exists := h.values[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Get returns the value for key and whether it is present.
func (h *HeaderInfo) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (h *HeaderInfo) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Len returns the number of fields.
func (h *HeaderInfo) Len() int {
	return len(h.keys)
}

// UnmarshalJSON decodes a JSON object via the token stream so key order
// survives the round trip. Scalar values are coerced to display strings;
// nested values keep their compact JSON form.
func (h *HeaderInfo) UnmarshalJSON(data []byte) error {
	h.keys = nil
	h.values = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("header info: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("header info: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("header info: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("header info: non-string key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("header info: field %q: %w", key, err)
		}
		h.Set(key, stringifyValue(value))
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("header info: %w", err)
	}
	return nil
}

// MarshalJSON writes the fields back out in insertion order.
func (h HeaderInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range h.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(h.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
