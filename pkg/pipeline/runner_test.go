package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func configWithOpacity(o float64) flower.Config {
	c := flower.DefaultConfig()
	c.OffFocusOpacity = o
	return c
}

func testRecords() []flower.Record {
	return []flower.Record{
		{"label": "a", "types": []any{"x", "y"}},
		{"label": "b", "types": []any{"y"}},
		{"label": "c", "types": []any{"y", "z"}},
	}
}

func TestExecuteLegendAndRecords(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), testRecords(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var order []string
	for _, e := range res.Legend {
		order = append(order, e.Type)
	}
	if got := strings.Join(order, ","); got != "y,x,z" {
		t.Errorf("legend order = %s, want y,x,z", got)
	}
	if res.Legend[0].Count != 3 {
		t.Errorf("count(y) = %d, want 3", res.Legend[0].Count)
	}
	if len(res.Records) != 3 || res.Records[0].Label != "a" {
		t.Errorf("records = %+v", res.Records)
	}
	if got := res.Records[0].TypeNames(); strings.Join(got, ",") != "y,x" {
		t.Errorf("record a types = %v, want legend order [y x]", got)
	}
	if res.Position != (flower.Position{X: 300, Y: 400}) {
		t.Errorf("position = %+v, want {300 400}", res.Position)
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	if !bytes.Contains(res.Artifacts["json"], []byte(`"legend"`)) {
		t.Error("json artifact should contain the legend")
	}
	if res.DatasetHash == "" || res.Stats.TypeCount != 3 || res.Stats.RecordCount != 3 {
		t.Errorf("result metadata = %q %+v", res.DatasetHash, res.Stats)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	first, err := r.Execute(ctx, testRecords(), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v, want all misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, testRecords(), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	// A hover preset reuses the layout but renders a new artifact.
	hovered, err := r.Execute(ctx, testRecords(), Options{HoverTypes: []string{"x"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !hovered.CacheInfo.LayoutHit || hovered.CacheInfo.RenderHit {
		t.Errorf("hover run cache info = %+v, want layout hit and render miss", hovered.CacheInfo)
	}
	if !bytes.Contains(hovered.Artifacts["svg"], []byte(`data-hover-types="[&#34;x&#34;]"`)) {
		t.Error("hovered svg should carry the hover types")
	}

	// Refresh skips reads.
	refreshed, err := r.Execute(ctx, testRecords(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh run cache info = %+v, want all misses", refreshed.CacheInfo)
	}
}

func TestExecuteDatasetChangeMissesLayout(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	if _, err := r.Execute(ctx, testRecords(), Options{}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	records := append(testRecords(), flower.Record{"label": "d", "types": []any{"w"}})
	res, err := r.Execute(ctx, records, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("a new record should miss the layout cache")
	}
	if len(res.Legend) != 4 {
		t.Errorf("legend has %d entries, want 4", len(res.Legend))
	}
}

func TestExecuteNodelinkDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), testRecords(), Options{
		VizType: VizTypeNodelink,
		Formats: []string{"dot"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	dot := string(res.Artifacts["dot"])
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("dot artifact = %q", dot)
	}
	if !strings.Contains(dot, `"type:y" -- "record:0"`) && !strings.Contains(dot, `"record:0" -- "type:y"`) {
		t.Errorf("dot artifact lacks the a-y membership edge:\n%s", dot)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), testRecords(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("Execute() should reject unknown formats")
	}
}

func TestExecuteEmptyRecords(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Legend == nil || len(res.Legend) != 0 {
		t.Errorf("legend = %#v, want empty", res.Legend)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("</svg>")) {
		t.Error("empty graph should still render a document")
	}
}
