package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// stdinPath reads the payload from standard input
const stdinPath = "-"

// readPayload decodes a JSON or YAML file into T.
// Files without a .json extension are parsed as YAML, which accepts JSON too.
func readPayload[T any](path string, stdin io.Reader) (*T, error) {
	if path == "" {
		return nil, fmt.Errorf("a payload file is required (--file)")
	}

	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	return decodePayload[T](data, strings.EqualFold(filepath.Ext(path), ".json"))
}

func decodePayload[T any](data []byte, isJSON bool) (*T, error) {
	var out T
	if isJSON {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse JSON payload: %w", err)
		}
		return &out, nil
	}

	// YAML goes through a generic tree so the json tags of T apply
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML payload: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("payload is empty")
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse YAML payload: %w", err)
	}
	return &out, nil
}
