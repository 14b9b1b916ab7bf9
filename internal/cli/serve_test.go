package cli

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/flowergraph/pkg/cache"
	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/pipeline"
)

func newTestServer(t *testing.T, gatherer prometheus.Gatherer) (*httptest.Server, *flower.Graph[flower.Record]) {
	t.Helper()
	g, opts := testGraph(t)
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	ts := httptest.NewServer(newServer(g, opts, runner, logger).routes(gatherer))
	t.Cleanup(ts.Close)
	return ts, g
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(data)
}

func TestServeHealthz(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestServeLegendAndRecords(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	_, body := do(t, http.MethodGet, ts.URL+"/legend", "")
	var legend []flower.LegendEntry
	if err := json.Unmarshal([]byte(body), &legend); err != nil {
		t.Fatalf("decode legend: %v", err)
	}
	if len(legend) != 3 || legend[0].Type != "y" || legend[0].Count != 3 {
		t.Errorf("legend = %+v", legend)
	}

	_, body = do(t, http.MethodGet, ts.URL+"/records", "")
	var records []flower.ProjectedRecord
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 3 || records[0].Label != "a" {
		t.Errorf("records = %+v", records)
	}
}

func TestServeHover(t *testing.T) {
	ts, g := newTestServer(t, nil)

	resp, body := do(t, http.MethodPut, ts.URL+"/hover", `{"types": ["x"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /hover = %d %s", resp.StatusCode, body)
	}
	var state flower.HoverState
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		t.Fatal(err)
	}
	if state.HasLabel || !slices.Equal(state.Types, []string{"x"}) {
		t.Errorf("state = %+v, want types [x]", state)
	}
	if s := g.Hover().State(); !slices.Equal(s.Types, []string{"x"}) {
		t.Errorf("coordinator = %+v", s)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/graph.svg", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /graph.svg = %d %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, `data-hover-types="[&#34;x&#34;]"`) {
		t.Error("svg should carry the hover state")
	}

	_, body = do(t, http.MethodPut, ts.URL+"/hover", `{"label": "b"}`)
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		t.Fatal(err)
	}
	if !state.HasLabel || state.Label != "b" || len(state.Types) != 0 {
		t.Errorf("state = %+v, want label b only", state)
	}

	do(t, http.MethodDelete, ts.URL+"/hover", "")
	if s := g.Hover().State(); !s.Idle() {
		t.Errorf("after DELETE: %+v, want idle", s)
	}
}

func TestServeErrors(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	tests := []struct {
		method, path, body string
		status             int
		code               string
	}{
		{http.MethodGet, "/graph.gif", "", http.StatusBadRequest, "INVALID_FORMAT"},
		{http.MethodGet, "/graph.dot", "", http.StatusBadRequest, "INVALID_FORMAT"},
		{http.MethodGet, "/graph.svg?viz=tree", "", http.StatusBadRequest, "INVALID_VIZ_TYPE"},
		{http.MethodPut, "/hover", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{http.MethodGet, "/missing", "", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/metrics", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, body := do(t, tt.method, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var e map[string]string
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if e["code"] != tt.code {
				t.Errorf("code = %q, want %q", e["code"], tt.code)
			}
		})
	}
}

func TestServeUncodedError(t *testing.T) {
	s := &server{logger: log.New(io.Discard)}
	rec := httptest.NewRecorder()
	s.writeError(rec, errors.New("disk on fire"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var e map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e["code"] != "INTERNAL_ERROR" || e["error"] != "internal error" {
		t.Errorf("body = %v", e)
	}
}

func TestServeNodelinkDOT(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := do(t, http.MethodGet, ts.URL+"/graph.dot?viz=nodelink", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"record:0" -- "type:y"`) {
		t.Errorf("dot output missing edge:\n%s", body)
	}
}

func TestServeMetrics(t *testing.T) {
	ts, _ := newTestServer(t, prometheus.NewRegistry())
	if resp, _ := do(t, http.MethodGet, ts.URL+"/metrics", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics = %d", resp.StatusCode)
	}

	ts, _ = newTestServer(t, nil)
	if resp, _ := do(t, http.MethodGet, ts.URL+"/metrics", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics without a registry = %d, want 404", resp.StatusCode)
	}
}
