package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowergraph/pkg/errors"
)

// Encode writes v to w in format f. JSON output is indented.
//
// TOML cannot encode a bare list, so slices are wrapped in a table under
// "records", which ReadRecords reads back.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case TOML:
		if isSlice(v) {
			v = map[string]any{"records": v}
		}
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	return nil
}

// Export writes v to a file at path, picking the format from the extension.
func Export(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, v, DetectFormat(path))
}

func isSlice(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
