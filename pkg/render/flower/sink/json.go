package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	absolute bool
	indent   bool
}

// WithAbsolute adds the rotated, canvas-space coordinates of every node, so
// consumers can draw without applying the transform themselves.
func WithAbsolute() JSONOption { return func(r *jsonRenderer) { r.absolute = true } }

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width       float64                  `json:"width"`
	Height      float64                  `json:"height"`
	ViewBox     string                   `json:"view_box"`
	Position    flower.Position          `json:"position"`
	Rotation    float64                  `json:"rotation"`
	Transform   string                   `json:"transform"`
	Opacity     float64                  `json:"off_focus_opacity"`
	Legend      []flower.LegendEntry     `json:"legend"`
	Records     []flower.ProjectedRecord `json:"records"`
	Roots       []jsonRoot               `json:"roots"`
	Petals      []jsonPetal              `json:"petals"`
	Connections []flower.Connection      `json:"connections"`
	Hover       flower.HoverState        `json:"hover"`
}

type jsonRoot struct {
	flower.Root
	Absolute *flower.Position `json:"absolute,omitempty"`
	Opacity  float64          `json:"opacity"`
}

type jsonPetal struct {
	flower.Petal
	Absolute *flower.Position `json:"absolute,omitempty"`
	Opacity  float64          `json:"opacity"`
}

// RenderJSON serialises the scene and its placed nodes, including the opacity
// each node renders at under the current hover state.
func RenderJSON(s flower.Scene, n Nodes, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	dim := s.Config.OffFocusOpacity
	out := jsonOutput{
		Width:       s.Config.Width,
		Height:      s.Config.Height,
		ViewBox:     s.Config.ViewBox(),
		Position:    s.Position,
		Rotation:    s.Config.Angle(),
		Transform:   s.Transform,
		Opacity:     dim,
		Legend:      s.Legend,
		Records:     s.Records,
		Roots:       make([]jsonRoot, len(n.Roots)),
		Petals:      make([]jsonPetal, len(n.Petals)),
		Connections: n.Connections(),
		Hover:       s.Hover,
	}
	if out.Connections == nil {
		out.Connections = []flower.Connection{}
	}

	for i, root := range n.Roots {
		out.Roots[i] = jsonRoot{Root: root, Opacity: s.Hover.TypeOpacity(root.Type, dim)}
		if r.absolute {
			p := s.Position.RotatePoint(root.Position, s.Config.Angle())
			out.Roots[i].Absolute = &p
		}
	}
	for i, petal := range n.Petals {
		out.Petals[i] = jsonPetal{Petal: petal, Opacity: s.Hover.Opacity(petal.Label, petal.TypeNames(), dim)}
		if r.absolute {
			p := s.Position.RotatePoint(petal.Position, s.Config.Angle())
			out.Petals[i].Absolute = &p
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
