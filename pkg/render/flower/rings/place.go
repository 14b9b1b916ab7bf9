package rings

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/flowergraph/pkg/flower"
)

// EvenRoots spreads one root per legend entry evenly around the outer ring,
// in legend order, starting at the top.
func EvenRoots(f Frame, legend []flower.LegendEntry) []flower.Root {
	roots := make([]flower.Root, len(legend))
	step := 2 * math.Pi / float64(max(len(legend), 1))
	for i, e := range legend {
		a := step * float64(i)
		roots[i] = flower.Root{
			Type:     e.Type,
			Color:    e.Color,
			Count:    e.Count,
			Angle:    a,
			Position: f.Center.Polar(f.Config.Roots.Radius, a),
			Radius:   f.Config.Roots.NodeRadius,
		}
	}
	return roots
}

// ClusteredPetals places petals evenly on the inner circle, grouped by their
// first type so that records sharing a root sit next to each other. Groups
// follow legend order; records without types come last. The result keeps the
// input record order.
func ClusteredPetals(f Frame, records []flower.ProjectedRecord) []flower.Petal {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	rank := flower.LegendIndex(f.Legend)
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(groupOf(records[a], rank), groupOf(records[b], rank))
	})

	petals := make([]flower.Petal, len(records))
	step := 2 * math.Pi / float64(max(len(records), 1))
	for slot, i := range order {
		a := step*float64(slot) + step/2
		petals[i] = flower.Petal{
			Label:    records[i].Label,
			Types:    records[i].Types,
			Angle:    a,
			Position: f.Center.Polar(f.Config.InnerCircle.Radius, a),
			Radius:   f.Config.Petals.NodeRadius,
		}
	}
	return petals
}

func groupOf(r flower.ProjectedRecord, rank map[string]int) int {
	if len(r.Types) == 0 {
		return math.MaxInt
	}
	return rank[r.Types[0].Type]
}
