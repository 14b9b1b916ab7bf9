package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/flower"
)

// Format is a record file encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// recordKeys are the keys searched, in order, when the document is an object
// rather than a list.
var recordKeys = []string{"records", "data"}

// DetectFormat picks the format from the file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return JSON
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML, TOML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be json, yaml or toml)", s)
}

// ReadRecords decodes records from r.
//
// The document is either a list of objects or an object holding that list
// under "records" or "data". TOML documents are always tables, so they use
// the second form ([[records]]). Numbers are normalised to int64 when they are
// integral and float64 otherwise, so the same data yields the same labels in
// every format.
//
// ReadRecords does not close r.
func ReadRecords(r io.Reader, f Format) ([]flower.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read records")
	}

	var doc any
	switch f {
	case JSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		doc = m
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}

	list, err := recordList(doc)
	if err != nil {
		return nil, err
	}

	records := make([]flower.Record, 0, len(list))
	for i, item := range list {
		m, ok := normalize(item).(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "record %d is not an object", i)
		}
		records = append(records, m)
	}
	return records, nil
}

// ImportRecords reads the records in the file at path, picking the format
// from the extension.
func ImportRecords(path string) ([]flower.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	records, err := ReadRecords(f, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return records, nil
}

func recordList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		return toAnySlice(v), nil
	case map[string]any:
		for _, k := range recordKeys {
			switch list := v[k].(type) {
			case []any:
				return list, nil
			case []map[string]any:
				return toAnySlice(list), nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"expected a list of records or an object with a %q or %q list", recordKeys[0], recordKeys[1])
	case nil:
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected a list of records, got %T", doc)
	}
}

func toAnySlice(ms []map[string]any) []any {
	out := make([]any, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// normalize converts decoder-specific values to plain maps, slices, strings,
// bools, int64 and float64.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case int:
		return int64(x)
	case float64:
		if math.Abs(x) < 1<<53 && x == math.Trunc(x) {
			return int64(x)
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
