package flower

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flowergraph/pkg/palette"
)

// LegendEntry is a type joined with its color and the number of records that
// belong to it.
type LegendEntry struct {
	Type  string `json:"type" toml:"type"`
	Color string `json:"color" toml:"color"`
	Count int    `json:"count" toml:"count"`
}

// AssignColors returns one color per type, parallel to the type list.
func AssignColors(n int, p palette.Policy) []string {
	return palette.Generate(n, p)
}

// RankLegend joins types with colors[i] and their record counts, then sorts
// the entries by descending count. Ties keep the order of types.
//
// A record counts once per type even if its accessor repeats the type.
func RankLegend[R any](types, colors []string, records []R, typesOf func(R) []string) []LegendEntry {
	counts := make(map[string]int, len(types))
	for _, r := range records {
		rt := typesOf(r)
		for i, t := range rt {
			if slices.Contains(rt[:i], t) {
				continue
			}
			counts[t]++
		}
	}

	entries := make([]LegendEntry, len(types))
	for i, t := range types {
		entries[i] = LegendEntry{Type: t, Count: counts[t]}
		if i < len(colors) {
			entries[i].Color = colors[i]
		}
	}

	slices.SortStableFunc(entries, func(a, b LegendEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return entries
}

// LegendIndex maps each type to its position in the canonical legend order.
func LegendIndex(legend []LegendEntry) map[string]int {
	idx := make(map[string]int, len(legend))
	for i, e := range legend {
		idx[e.Type] = i
	}
	return idx
}
