package rings

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

const (
	legendMargin   = 12
	maxLabelRunes  = 24
	fallbackColor  = "#9e9e9e"
	linkStrokeBase = 0.8
)

// Simple draws flat circles, straight labels and curved connections.
type Simple struct{}

var _ Style = Simple{}

func (Simple) PlaceRoots(f Frame, legend []flower.LegendEntry) []flower.Root {
	return EvenRoots(f, legend)
}

func (Simple) PlacePetals(f Frame, records []flower.ProjectedRecord) []flower.Petal {
	return ClusteredPetals(f, records)
}

func (Simple) RenderLegend(buf *bytes.Buffer, f Frame, legend []flower.LegendEntry) {
	opts := f.Config.Legend
	if opts.Hidden {
		return
	}
	cols := max(opts.Columns, 1)
	colW := (f.Config.Width - 2*legendMargin) / float64(cols)
	rowH := opts.SwatchSize + 6

	buf.WriteString(`  <g class="fg-legend">` + "\n")
	for i, e := range legend {
		x := legendMargin + float64(i%cols)*colW
		y := legendMargin + float64(i/cols)*rowH
		label := Truncate(e.Type, maxLabelRunes)
		if !opts.HideCounts {
			label = fmt.Sprintf("%s (%d)", label, e.Count)
		}
		fmt.Fprintf(buf, `    <g class="fg-legend-item fg-node" data-types="%s" opacity="%.2f">`,
			TypesAttr([]string{e.Type}), f.Hover.TypeOpacity(e.Type, f.Dim()))
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2" fill="%s"/>`,
			x, y, opts.SwatchSize, opts.SwatchSize, e.Color)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%.2f" dominant-baseline="middle">%s</text></g>`+"\n",
			x+opts.SwatchSize+4, y+opts.SwatchSize/2, f.Config.FontSize*1.5, EscapeXML(label))
	}
	buf.WriteString("  </g>\n")
}

func (Simple) RenderRoots(buf *bytes.Buffer, f Frame, roots []flower.Root) {
	buf.WriteString(`    <g class="fg-roots">` + "\n")
	for _, r := range roots {
		fmt.Fprintf(buf, `      <g class="fg-root fg-node" data-types="%s" opacity="%.2f">`,
			TypesAttr([]string{r.Type}), f.Hover.TypeOpacity(r.Type, f.Dim()))
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`,
			r.Position.X, r.Position.Y, r.Radius, r.Color)
		if !f.Config.Roots.HideLabels {
			p := f.Center.Polar(f.Config.Roots.Radius+r.Radius+f.Config.FontSize*1.5, r.Angle)
			fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%.2f" text-anchor="middle" dominant-baseline="middle">%s</text>`,
				p.X, p.Y, f.Config.FontSize*1.5, EscapeXML(Truncate(r.Type, maxLabelRunes)))
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("    </g>\n")
}

func (Simple) RenderPetals(buf *bytes.Buffer, f Frame, petals []flower.Petal) {
	buf.WriteString(`    <g class="fg-petals">` + "\n")
	if c := f.Config.InnerCircle; !c.Hidden {
		fmt.Fprintf(buf, `      <circle class="fg-inner" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"`,
			f.Center.X, f.Center.Y, c.Radius, c.Stroke)
		if c.StrokeDasharray != "" {
			fmt.Fprintf(buf, ` stroke-dasharray="%s"`, EscapeXML(c.StrokeDasharray))
		}
		buf.WriteString("/>\n")
	}
	for _, p := range petals {
		types := p.TypeNames()
		color := fallbackColor
		if len(p.Types) > 0 {
			color = p.Types[0].Color
		}
		fmt.Fprintf(buf, `      <g class="fg-petal fg-node" data-label="%s" data-types="%s" opacity="%.2f">`,
			EscapeXML(p.Label), TypesAttr(types), f.Hover.Opacity(p.Label, types, f.Dim()))
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`,
			p.Position.X, p.Position.Y, p.Radius, color)
		if !f.Config.Petals.HideLabels {
			lp := f.Center.Polar(f.Config.InnerCircle.Radius-p.Radius-f.Config.FontSize, p.Angle)
			fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%.2f" text-anchor="middle" dominant-baseline="middle">%s</text>`,
				lp.X, lp.Y, f.Config.FontSize, EscapeXML(Truncate(p.Label, maxLabelRunes)))
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("    </g>\n")
}

func (Simple) RenderConnections(buf *bytes.Buffer, f Frame, conns []flower.Connection) {
	buf.WriteString(`    <g class="fg-connections" fill="none">` + "\n")
	for _, c := range conns {
		ctrl := flower.Position{
			X: (c.From.X+c.To.X)/2*0.5 + f.Center.X*0.5,
			Y: (c.From.Y+c.To.Y)/2*0.5 + f.Center.Y*0.5,
		}
		fmt.Fprintf(buf, `      <path class="fg-link fg-node" data-label="%s" data-types="%s" opacity="%.2f" stroke="%s" stroke-width="%.2f" d="M %.2f %.2f Q %.2f %.2f %.2f %.2f"/>`+"\n",
			EscapeXML(c.Label), TypesAttr([]string{c.Type}), f.Hover.Opacity(c.Label, []string{c.Type}, f.Dim()),
			c.Color, linkStrokeBase, c.From.X, c.From.Y, ctrl.X, ctrl.Y, c.To.X, c.To.Y)
	}
	buf.WriteString("    </g>\n")
}
