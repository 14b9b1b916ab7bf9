// Package sink provides output format renderers for flower graphs.
//
// # Overview
//
// A "sink" turns a [flower.Scene] and its placed [Nodes] into a final output
// format:
//
//   - SVG: an interactive document with hover focus
//   - JSON: the scene plus node geometry, for custom front ends
//   - PDF and PNG: print and raster output (requires rsvg-convert)
//
// # Render Pass
//
// [Place] asks the style to place roots and petals, reports them back to the
// graph, and returns what the renderers need:
//
//	scene, nodes := sink.Place(g, rings.Simple{})
//	svg := sink.RenderSVG(scene, nodes)
//
// # SVG Output
//
// The document has a fixed structure. The legend group comes first and is
// never rotated. The group named "Graph" carries the rotation transform and
// draws connections beneath petals beneath roots. Every element starts at the
// opacity of the scene's hover state; the embedded script keeps applying the
// same rule as the pointer moves and dispatches a "flowergraph:hover"
// CustomEvent whenever the state changes.
//
// # SVG Options
//
//   - [WithStyle]: drawing collaborators ([rings.Simple] by default)
//   - [WithStatic]: omit the script (used by PDF and PNG)
//   - [WithID]: document id (derived from the scene by default)
package sink
