package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RedactedMarker replaces the value of every sensitive key
const RedactedMarker = "[REDACTED]"

var sensitiveKeys = []string{"password", "token", "key", "secret", "api_key"}

// Redact returns a deep copy of v, as a generic JSON tree, in which the value of
// every key whose lowercased name contains a sensitive fragment is replaced
// by RedactedMarker. v itself is never modified.
func Redact(v any) any {
	if v == nil {
		return nil
	}

	tree, err := toTree(v)
	if err != nil {
		return fmt.Sprintf("<unloggable %T: %v>", v, err)
	}
	return redactTree(tree)
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, fragment := range sensitiveKeys {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}

// redactTree works in place; callers pass a freshly decoded tree.
func redactTree(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if isSensitiveKey(k) {
				node[k] = RedactedMarker
				continue
			}
			node[k] = redactTree(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = redactTree(child)
		}
		return node
	default:
		return v
	}
}

func toTree(v any) (any, error) {
	var data []byte
	switch b := v.(type) {
	case json.RawMessage:
		data = b
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}
