// Package flower computes the layout and hover coordination of radial "flower"
// diagrams.
//
// A flower diagram groups records into overlapping categories called types.
// Each type becomes a colored root node on an outer ring, each record becomes
// a petal on an inner ring, and connections join every petal to the roots of
// its types. Hovering a root, a petal or a legend entry focuses the matching
// elements and dims the rest.
//
// # Derivation
//
// Derived values are pure functions of the records and the [Config]:
//
//   - [ExtractTypes]: distinct types in order of first appearance
//   - [AssignColors]: one color per type, see package palette
//   - [RankLegend]: types joined with color and record count, sorted by count
//   - [ProjectRecords]: each record as a label plus its legend entries
//   - [ResolvePosition]: the shared center of rotation
//
// The legend ordering returned by [RankLegend] is the canonical type order;
// roots, petals and connections never re-derive their own ordering.
//
// # Orchestration
//
// [Graph] memoises the derived values by value keys, so a hover change or a
// redundant SetRecords call never re-runs the palette or the ranking:
//
//	g := flower.New[flower.Record](flower.FieldAccessor{LabelField: "id", TypesField: "type"}, records, flower.DefaultConfig())
//	legend := g.Legend()
//	g.Hover().EnterTypes([]string{legend[0].Type})
//
// # Hover
//
// [Coordinator] is the single hover state shared by the legend, roots, petals
// and connections renderers. It has a label track and a type-set track; each
// Enter replaces the track value and each Leave resets it. Subscribers and the
// optional OnLabel/OnTypes callbacks are notified synchronously after every
// change. [HoverState] answers which elements are focused and at what opacity
// they render.
//
// # Errors
//
// Accessors are caller-supplied and expected to be total; a panicking accessor
// propagates to the caller unchanged. [Config.Validate] reports invalid
// configuration with codes from package errors.
package flower
