package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestHooks(t *testing.T) *Hooks {
	t.Helper()
	return New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
}

func TestPipelineMetrics(t *testing.T) {
	h := newTestHooks(t)
	ctx := context.Background()

	h.OnLayoutStart(ctx, 12)
	h.OnLayoutComplete(ctx, 4, 20*time.Millisecond, nil)
	h.OnLayoutComplete(ctx, 9, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(h.records); got != 12 {
		t.Errorf("records = %v, want 12", got)
	}
	if got := testutil.ToFloat64(h.legendSize); got != 4 {
		t.Errorf("legend size = %v, want 4 (failed layouts must not update it)", got)
	}
	if got := testutil.ToFloat64(h.layouts.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok layouts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.layouts.WithLabelValues("error")); got != 1 {
		t.Errorf("failed layouts = %v, want 1", got)
	}

	h.OnRenderStart(ctx, "flower", []string{"svg"})
	h.OnRenderComplete(ctx, "flower", []string{"svg"}, time.Millisecond, nil)
	if got := testutil.ToFloat64(h.renders.WithLabelValues("flower", "ok")); got != 1 {
		t.Errorf("renders = %v, want 1", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	h := newTestHooks(t)
	ctx := context.Background()

	h.OnCacheMiss(ctx, "layout")
	h.OnCacheSet(ctx, "layout", 512)
	h.OnCacheSet(ctx, "layout", 256)
	h.OnCacheHit(ctx, "layout")
	h.OnCacheHit(ctx, "layout")

	if got := testutil.ToFloat64(h.cacheHits.WithLabelValues("layout")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.cacheMisses.WithLabelValues("layout")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.cacheBytes.WithLabelValues("layout")); got != 768 {
		t.Errorf("bytes = %v, want 768", got)
	}
}

func TestHTTPMetrics(t *testing.T) {
	h := newTestHooks(t)
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "/graph.svg")
	if got := testutil.ToFloat64(h.httpInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	h.OnResponse(ctx, "get", "/graph.svg", 200, time.Millisecond)
	if got := testutil.ToFloat64(h.httpInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(h.httpRequests.WithLabelValues("/graph.svg", "GET", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestHoverMetrics(t *testing.T) {
	h := newTestHooks(t)

	h.OnHoverChange("label", true)
	h.OnHoverChange("label", false)
	h.OnHoverChange("types", true)

	tests := []struct {
		track, state string
		want         float64
	}{
		{"label", "set", 1},
		{"label", "reset", 1},
		{"types", "set", 1},
		{"types", "reset", 0},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(h.hoverChanges.WithLabelValues(tt.track, tt.state)); got != tt.want {
			t.Errorf("hover %s/%s = %v, want %v", tt.track, tt.state, got, tt.want)
		}
	}
}

func TestRegisteredNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(WithRegistry(reg))
	h.OnCacheHit(context.Background(), "artifact")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "flowergraph_cache_hits_total" {
			found = true
		}
	}
	if !found {
		t.Error("flowergraph_cache_hits_total not registered")
	}
}
