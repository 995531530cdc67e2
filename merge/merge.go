// Package merge fills the gaps of a partial payload from a defaults template.
//
// Objects merge recursively, arrays and scalars are replaced wholesale by the
// user's value. Neither input is modified; the result shares no maps or
// slices with them.
package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Merge returns a new tree holding every field of user, with every field
// absent from user, at any depth, taken from template.
func Merge(template, user map[string]any) map[string]any {
	out := make(map[string]any, len(template)+len(user))

	for key, fallback := range template {
		value, ok := user[key]
		if !ok {
			out[key] = Clone(fallback)
			continue
		}

		fallbackObj, fallbackIsObj := fallback.(map[string]any)
		valueObj, valueIsObj := value.(map[string]any)
		if fallbackIsObj && valueIsObj {
			out[key] = Merge(fallbackObj, valueObj)
			continue
		}
		out[key] = Clone(value)
	}

	for key, value := range user {
		if _, done := out[key]; !done {
			out[key] = Clone(value)
		}
	}

	return out
}

// Clone deep copies the maps and slices of a generic JSON tree
func Clone(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = Clone(child)
		}
		return out
	case []string:
		return append([]string(nil), node...)
	case []int:
		return append([]int(nil), node...)
	case []int64:
		return append([]int64(nil), node...)
	case []float64:
		return append([]float64(nil), node...)
	default:
		return v
	}
}

// ToMap converts a payload, typically a struct with omitempty fields, to the
// generic tree Merge works on. Numbers are kept as json.Number.
func ToMap(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
