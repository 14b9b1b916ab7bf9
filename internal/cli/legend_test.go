package cli

import (
	"strings"
	"testing"
)

func TestRenderLegendTable(t *testing.T) {
	g, _ := testGraph(t)
	out := renderLegendTable(g.Legend())

	for _, want := range []string{"Type", "Records", "y", "x", "z"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, " y ") > strings.Index(out, " x ") {
		t.Errorf("y (3 records) should be listed before x:\n%s", out)
	}
}

func TestRenderLegendTableEmpty(t *testing.T) {
	out := renderLegendTable(nil)
	if !strings.Contains(out, "Type") {
		t.Errorf("empty legend should still render headers:\n%s", out)
	}
}
