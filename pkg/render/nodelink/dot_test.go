package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

var (
	testLegend = []flower.LegendEntry{
		{Type: "a", Color: "#ff0000", Count: 2},
		{Type: "b", Color: "#00ff00", Count: 1},
	}
	testRecords = []flower.ProjectedRecord{
		{Label: "1", Types: testLegend},
		{Label: "2", Types: testLegend[:1]},
	}
)

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testLegend, testRecords, Options{})

	if !strings.Contains(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	for _, want := range []string{`"type:a"`, `"type:b"`, `"record:0"`, `"record:1"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing node %s", want)
		}
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("ToDOT() has %d edges, want 3", got)
	}
	if !strings.Contains(dot, `fillcolor="#ff0000"`) {
		t.Error("ToDOT() should keep legend colors")
	}
}

func TestToDOT_Counts(t *testing.T) {
	dot := ToDOT(testLegend, testRecords, Options{Counts: true})
	if !strings.Contains(dot, `label="a (2)"`) {
		t.Error("ToDOT() counts output missing count label")
	}
}

func TestToDOT_Hover(t *testing.T) {
	dot := ToDOT(testLegend, testRecords, Options{Hover: flower.HoverState{Types: []string{"b"}}})

	// a is dimmed to 0.4 * 255 = 102 = 0x66.
	if !strings.Contains(dot, `fillcolor="#ff000066"`) {
		t.Error("unfocused type should be dimmed")
	}
	if !strings.Contains(dot, `fillcolor="#00ff00"`) {
		t.Error("focused type should keep full opacity")
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		color string
		op    float64
		want  string
	}{
		{"#123456", 1, "#123456"},
		{"#123456", 0, "#12345600"},
		{"#123456", 0.5, "#12345680"},
		{"red", 0.5, "red"},
	}
	for _, tt := range tests {
		if got := withAlpha(tt.color, tt.op); got != tt.want {
			t.Errorf("withAlpha(%q, %v) = %q, want %q", tt.color, tt.op, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 200.00" width="100" height="200"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
}
