// Package jsonutil provides shared helpers for JSON encoding with
// contextual errors.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message. Numbers decode as json.Number so
// integers survive round trips through interface values.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalIndentWithContext marshals v with two-space indentation and a
// trailing newline, wrapping any error with the context message.
func MarshalIndentWithContext(v interface{}, context string) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return append(b, '\n'), nil
}

// Normalize converts decoded JSON values into plain Go values: json.Number
// becomes int64 when integral and float64 otherwise, recursively through
// maps and slices.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]interface{}:
		for k, e := range val {
			val[k] = Normalize(e)
		}
		return val
	case []interface{}:
		for i, e := range val {
			val[i] = Normalize(e)
		}
		return val
	default:
		return v
	}
}
