package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/render/flower/rings"
)

const hoverCSS = `
    .fg-node { transition: opacity 0.2s ease; }
    .fg-legend-item, .fg-root, .fg-petal { cursor: pointer; }
    text { fill: #333333; pointer-events: none; }`

// hoverJS mirrors flower.HoverState: legend entries and roots hover a type,
// petals hover their label and types, and leaving resets both tracks.
const hoverJS = `
    (function () {
      var root = document.getElementById('%s');
      if (!root) return;
      var dim = parseFloat(root.getAttribute('data-dim'));
      var nodes = Array.prototype.slice.call(root.querySelectorAll('.fg-node'));
      function typesOf(el) {
        try { return JSON.parse(el.getAttribute('data-types') || '[]'); } catch (e) { return []; }
      }
      var state = { label: root.getAttribute('data-hover-label'), types: JSON.parse(root.getAttribute('data-hover-types') || '[]') };
      function isType(el) { return el.classList.contains('fg-root') || el.classList.contains('fg-legend-item'); }
      function focused(el) {
        if (state.label === null && state.types.length === 0) return true;
        if (!isType(el) && state.label !== null && el.getAttribute('data-label') === state.label) return true;
        return typesOf(el).some(function (t) { return state.types.indexOf(t) >= 0; });
      }
      function set(label, types) {
        var changed = label !== state.label || types.join('\u0000') !== state.types.join('\u0000');
        state = { label: label, types: types };
        if (!changed) return;
        nodes.forEach(function (el) { el.setAttribute('opacity', focused(el) ? '1' : String(dim)); });
        root.dispatchEvent(new CustomEvent('flowergraph:hover', { bubbles: true, detail: { label: label, types: types } }));
      }
      nodes.forEach(function (el) {
        if (el.classList.contains('fg-link')) return;
        var types = typesOf(el);
        var label = el.classList.contains('fg-petal') ? el.getAttribute('data-label') : null;
        el.addEventListener('mouseenter', function () { set(label, types); });
        el.addEventListener('mouseleave', function () { set(null, []); });
      });
    })();`

// Nodes are the placed roots and petals of one render pass.
type Nodes struct {
	Roots  []flower.Root  `json:"roots"`
	Petals []flower.Petal `json:"petals"`
}

// Connections joins the petals to their roots.
func (n Nodes) Connections() []flower.Connection {
	return flower.Connections(n.Roots, n.Petals)
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  rings.Style
	static bool
	id     string
}

// WithStyle sets the drawing collaborators (default [rings.Simple]).
func WithStyle(s rings.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithStatic omits the hover script, for PNG and PDF output.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithID sets the document id. By default it is derived from the scene, so
// several graphs can share one HTML page.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: rings.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Frame returns the collaborator view of a scene.
func Frame(s flower.Scene) rings.Frame {
	return rings.Frame{Config: s.Config, Center: s.Position, Hover: s.Hover, Legend: s.Legend}
}

// Place runs the placement pass of style over the graph and reports the placed
// nodes back to it. It returns the scene the nodes were placed for.
func Place[R any](g *flower.Graph[R], style rings.Style) (flower.Scene, Nodes) {
	if style == nil {
		style = rings.Simple{}
	}
	scene := g.Snapshot()
	f := Frame(scene)
	g.ReportRoots(style.PlaceRoots(f, scene.Legend))
	g.ReportPetals(style.PlacePetals(f, scene.Records))
	return scene, Nodes{Roots: g.Roots(), Petals: g.Petals()}
}

// RenderSVG renders the scene as a standalone SVG document: the legend band,
// then the rotated group holding connections, petals and roots in that order.
func RenderSVG(s flower.Scene, n Nodes, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	if r.id == "" {
		r.id = DocumentID(s)
	}
	f := Frame(s)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="%s" width="%.0f" height="%.0f" font-family="sans-serif" data-dim="%.2f"`,
		r.id, s.Config.ViewBox(), s.Config.Width, s.Config.Height, s.Config.OffFocusOpacity)
	if s.Hover.HasLabel {
		fmt.Fprintf(&buf, ` data-hover-label="%s"`, rings.EscapeXML(s.Hover.Label))
	}
	fmt.Fprintf(&buf, ` data-hover-types="%s">`+"\n", rings.TypesAttr(s.Hover.Types))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", hoverCSS)

	r.style.RenderLegend(&buf, f, s.Legend)

	fmt.Fprintf(&buf, `  <g name="Graph" class="fg-graph" transform="%s">`+"\n", s.Transform)
	r.style.RenderConnections(&buf, f, n.Connections())
	r.style.RenderPetals(&buf, f, n.Petals)
	r.style.RenderRoots(&buf, f, n.Roots)
	buf.WriteString("  </g>\n")

	if !r.static {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(hoverJS, r.id))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// DocumentID derives a stable element id from the legend, the record labels
// and the transform of a scene.
func DocumentID(s flower.Scene) string {
	var b strings.Builder
	b.WriteString(s.Transform)
	for _, e := range s.Legend {
		b.WriteString("\x00" + e.Type + "\x01" + e.Color)
	}
	for _, r := range s.Records {
		b.WriteString("\x02" + r.Label)
	}
	return "fg-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String())).String()
}
