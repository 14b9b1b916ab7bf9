package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Counts appends the record count to type labels.
	Counts bool
	// Hover dims every node and edge outside the focus.
	Hover flower.HoverState
	// OffFocusOpacity is the opacity of unfocused elements, as in the flower view.
	OffFocusOpacity float64
	// Engine is the Graphviz layout engine. Defaults to circo.
	Engine string
}

// ToDOT converts the legend and projected records to an undirected bipartite
// graph: one filled node per type, one box per record, and an edge for each
// membership. Types keep their legend colors.
func ToDOT(legend []flower.LegendEntry, records []flower.ProjectedRecord, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, e := range legend {
		label := e.Type
		if opts.Counts {
			label = fmt.Sprintf("%s (%d)", e.Type, e.Count)
		}
		attrs := []string{
			fmt.Sprintf("label=%q", label),
			"shape=ellipse", "style=filled",
			fmt.Sprintf("fillcolor=%q", withAlpha(e.Color, opts.Hover.TypeOpacity(e.Type, opts.dim()))),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", typeID(e.Type), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, r := range records {
		op := opts.Hover.Opacity(r.Label, r.TypeNames(), opts.dim())
		attrs := []string{
			fmt.Sprintf("label=%q", r.Label),
			"shape=box", "style=\"rounded,filled\"",
			fmt.Sprintf("fillcolor=%q", withAlpha("#ffffff", op)),
			fmt.Sprintf("fontcolor=%q", withAlpha("#000000", op)),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", recordID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, r := range records {
		for _, e := range r.Types {
			op := opts.Hover.Opacity(r.Label, []string{e.Type}, opts.dim())
			fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", recordID(i), typeID(e.Type), withAlpha(e.Color, op))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (o Options) dim() float64 {
	if o.OffFocusOpacity == 0 {
		return flower.DefaultOffFocusOpacity
	}
	return o.OffFocusOpacity
}

func (o Options) engine() graphviz.Layout {
	if o.Engine == "" {
		return graphviz.CIRCO
	}
	return graphviz.Layout(o.Engine)
}

func typeID(t string) string { return "type:" + t }
func recordID(i int) string  { return "record:" + strconv.Itoa(i) }

// withAlpha appends an alpha channel to a #rrggbb color.
func withAlpha(color string, opacity float64) string {
	if opacity >= 1 || len(color) != 7 {
		return color
	}
	return fmt.Sprintf("%s%02x", color, int(opacity*255+0.5))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(opts.engine())

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, opts Options) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, opts Options, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
