package rings

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

var (
	legendA = flower.LegendEntry{Type: "a", Color: "#ff0000", Count: 2}
	legendB = flower.LegendEntry{Type: "b", Color: "#0000ff", Count: 1}
	legend  = []flower.LegendEntry{legendA, legendB}
)

func testFrame(hover flower.HoverState) Frame {
	cfg := flower.DefaultConfig()
	return Frame{
		Config: cfg,
		Center: flower.ResolvePosition(cfg.Width, cfg.Height, cfg.Position),
		Hover:  hover,
		Legend: legend,
	}
}

func dist(a, b flower.Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestEvenRoots(t *testing.T) {
	f := testFrame(flower.HoverState{})
	roots := EvenRoots(f, legend)
	if len(roots) != 2 {
		t.Fatalf("EvenRoots() returned %d roots", len(roots))
	}
	for i, r := range roots {
		if r.Type != legend[i].Type || r.Color != legend[i].Color {
			t.Errorf("root %d = %+v, want legend order", i, r)
		}
		if d := dist(r.Position, f.Center); math.Abs(d-f.Config.Roots.Radius) > 1e-9 {
			t.Errorf("root %d at distance %v, want %v", i, d, f.Config.Roots.Radius)
		}
	}
	if math.Abs(roots[1].Angle-math.Pi) > 1e-9 {
		t.Errorf("second root angle = %v, want pi", roots[1].Angle)
	}
}

func TestClusteredPetals(t *testing.T) {
	f := testFrame(flower.HoverState{})
	records := []flower.ProjectedRecord{
		{Label: "x", Types: []flower.LegendEntry{legendB}},
		{Label: "y", Types: []flower.LegendEntry{}},
		{Label: "z", Types: []flower.LegendEntry{legendA, legendB}},
	}
	petals := ClusteredPetals(f, records)
	if len(petals) != 3 {
		t.Fatalf("ClusteredPetals() returned %d petals", len(petals))
	}
	for i, p := range petals {
		if p.Label != records[i].Label {
			t.Errorf("petal %d label = %q, want input order", i, p.Label)
		}
		if d := dist(p.Position, f.Center); math.Abs(d-f.Config.InnerCircle.Radius) > 1e-9 {
			t.Errorf("petal %d off the inner circle", i)
		}
	}
	// z is grouped under a, the first legend entry, so it comes first.
	if !(petals[2].Angle < petals[0].Angle && petals[0].Angle < petals[1].Angle) {
		t.Errorf("petal angles z=%v x=%v y=%v not clustered", petals[2].Angle, petals[0].Angle, petals[1].Angle)
	}
}

func TestRenderLegendOpacity(t *testing.T) {
	f := testFrame(flower.HoverState{Types: []string{"a"}})
	var buf bytes.Buffer
	Simple{}.RenderLegend(&buf, f, legend)
	out := buf.String()

	if !strings.Contains(out, `data-types="[&#34;a&#34;]" opacity="1.00"`) {
		t.Errorf("focused legend entry missing full opacity:\n%s", out)
	}
	if !strings.Contains(out, `data-types="[&#34;b&#34;]" opacity="0.40"`) {
		t.Errorf("unfocused legend entry not dimmed:\n%s", out)
	}
	if !strings.Contains(out, "a (2)") {
		t.Error("legend should show counts")
	}
}

func TestRenderLegendHidden(t *testing.T) {
	f := testFrame(flower.HoverState{})
	f.Config.Legend.Hidden = true
	var buf bytes.Buffer
	Simple{}.RenderLegend(&buf, f, legend)
	if buf.Len() != 0 {
		t.Errorf("hidden legend rendered %q", buf.String())
	}
}

func TestRenderPetalsEscapes(t *testing.T) {
	f := testFrame(flower.HoverState{Label: "<x>", HasLabel: true})
	petals := ClusteredPetals(f, []flower.ProjectedRecord{
		{Label: "<x>", Types: []flower.LegendEntry{legendA}},
		{Label: "y", Types: []flower.LegendEntry{legendA}},
	})
	var buf bytes.Buffer
	Simple{}.RenderPetals(&buf, f, petals)
	out := buf.String()

	if strings.Contains(out, "<x>") {
		t.Error("petal label not escaped")
	}
	if !strings.Contains(out, `data-label="&lt;x&gt;" data-types="[&#34;a&#34;]" opacity="1.00"`) {
		t.Errorf("hovered petal not focused:\n%s", out)
	}
	if !strings.Contains(out, `data-label="y" data-types="[&#34;a&#34;]" opacity="0.40"`) {
		t.Errorf("other petal not dimmed:\n%s", out)
	}
	if !strings.Contains(out, `class="fg-inner"`) {
		t.Error("inner circle missing")
	}
}

func TestRenderConnections(t *testing.T) {
	f := testFrame(flower.HoverState{})
	conns := []flower.Connection{{From: flower.Position{X: 1, Y: 2}, To: flower.Position{X: 3, Y: 4}, Label: "p", Type: "a", Color: "#ff0000"}}
	var buf bytes.Buffer
	Simple{}.RenderConnections(&buf, f, conns)
	if !strings.Contains(buf.String(), `d="M 1.00 2.00 Q`) {
		t.Errorf("connection path missing:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abcd.."},
		{"äöüäöü", 5, "äöü.."},
		{"abc", 2, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
