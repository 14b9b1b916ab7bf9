package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/render/flower/sink"
)

// Layout is the serializable result of the layout stage: the scene and the
// nodes placed for it. The scene's hover state is not part of a layout.
type Layout struct {
	Scene flower.Scene `json:"scene"`
	Nodes sink.Nodes   `json:"nodes"`
}

// NewGraph builds the flower graph for records as configured by opts.
func NewGraph(records []flower.Record, opts Options) *flower.Graph[flower.Record] {
	return flower.New[flower.Record](opts.Accessor(), records, opts.Config)
}

// GenerateLayout derives the legend and projection of g and places its nodes
// with the configured ring style.
func GenerateLayout(g *flower.Graph[flower.Record], opts Options) Layout {
	scene, nodes := sink.Place(g, opts.RingStyle())
	scene.Hover = flower.HoverState{Types: []string{}}
	return Layout{Scene: scene, Nodes: nodes}
}

// MarshalLayout serializes a layout for caching.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout parses a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// WithHover returns a copy of l whose scene carries the hover state s.
func (l Layout) WithHover(s flower.HoverState) Layout {
	l.Scene.Hover = s
	return l
}
