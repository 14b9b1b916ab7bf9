package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/flower"
)

var acc = flower.FieldAccessor{LabelField: "id", TypesField: "type"}

func summarize(records []flower.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = acc.Label(r) + ":" + strings.Join(acc.Types(r), ",")
	}
	return out
}

func TestReadRecords(t *testing.T) {
	want := []string{"1:a,b", "2:a", "3:"}
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"JSONList", JSON, `[{"id":1,"type":["a","b"]},{"id":2,"type":["a"]},{"id":3}]`},
		{"JSONObject", JSON, `{"records":[{"id":"1","type":["a","b"]},{"id":"2","type":"a"},{"id":"3","type":null}]}`},
		{"JSONData", JSON, `{"data":[{"id":1.0,"type":["a","b"]},{"id":2,"type":["a"]},{"id":3}]}`},
		{"YAML", YAML, "- id: 1\n  type: [a, b]\n- id: 2\n  type: [a]\n- id: 3\n"},
		{"YAMLObject", YAML, "records:\n  - {id: '1', type: [a, b]}\n  - {id: '2', type: a}\n  - {id: '3'}\n"},
		{"TOML", TOML, "[[records]]\nid = 1\ntype = [\"a\", \"b\"]\n\n[[records]]\nid = 2\ntype = [\"a\"]\n\n[[records]]\nid = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadRecords(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadRecords() error: %v", err)
			}
			if got := summarize(records); !slices.Equal(got, want) {
				t.Errorf("ReadRecords() = %v, want %v", got, want)
			}
		})
	}
}

func TestReadRecordsErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"Malformed", JSON, `[{`, errors.ErrCodeInvalidFormat},
		{"Scalar", JSON, `42`, errors.ErrCodeInvalidInput},
		{"NoList", JSON, `{"items":[]}`, errors.ErrCodeInvalidInput},
		{"NonObject", JSON, `[1, 2]`, errors.ErrCodeInvalidInput},
		{"BadYAML", YAML, "a: [", errors.ErrCodeInvalidFormat},
		{"UnknownFormat", Format("xml"), `<a/>`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadRecords() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[]`), JSON)
	if err != nil || len(records) != 0 {
		t.Errorf("ReadRecords([]) = %v, %v", records, err)
	}
}

func TestImportRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.yml")
	if err := os.WriteFile(path, []byte("- id: x\n  type: [t]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ImportRecords(path)
	if err != nil {
		t.Fatalf("ImportRecords() error: %v", err)
	}
	if got := summarize(records); !slices.Equal(got, []string{"x:t"}) {
		t.Errorf("ImportRecords() = %v", got)
	}

	if _, err := ImportRecords(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.json": JSON, "a.YAML": YAML, "a.yml": YAML, "a.toml": TOML, "a": JSON,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != YAML {
		t.Errorf("ParseFormat(YML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(csv) error = %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	legend := []flower.LegendEntry{{Type: "a", Color: "#ff0000", Count: 2}}
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, legend, f); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			records, err := ReadRecords(&buf, f)
			if err != nil {
				t.Fatalf("ReadRecords() error: %v", err)
			}
			if len(records) != 1 || records[0]["type"] != "a" || records[0]["count"] != int64(2) {
				t.Errorf("round trip = %v", records)
			}
		})
	}
}
