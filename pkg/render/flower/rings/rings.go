package rings

import (
	"bytes"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

// Frame is what every collaborator sees of a render pass. Legend is the
// canonical type order.
type Frame struct {
	Config flower.Config
	Center flower.Position
	Hover  flower.HoverState
	Legend []flower.LegendEntry
}

// Dim returns the opacity of unfocused elements.
func (f Frame) Dim() float64 { return f.Config.OffFocusOpacity }

// Legend draws the legend band. It is never rotated.
type Legend interface {
	RenderLegend(buf *bytes.Buffer, f Frame, legend []flower.LegendEntry)
}

// Roots places and draws the type nodes of the outer ring.
type Roots interface {
	PlaceRoots(f Frame, legend []flower.LegendEntry) []flower.Root
	RenderRoots(buf *bytes.Buffer, f Frame, roots []flower.Root)
}

// Petals places and draws the record nodes on the inner circle.
type Petals interface {
	PlacePetals(f Frame, records []flower.ProjectedRecord) []flower.Petal
	RenderPetals(buf *bytes.Buffer, f Frame, petals []flower.Petal)
}

// Connections draws the lines between petals and roots.
type Connections interface {
	RenderConnections(buf *bytes.Buffer, f Frame, conns []flower.Connection)
}

// Style bundles the four collaborators.
type Style interface {
	Legend
	Roots
	Petals
	Connections
}
