// Package nodelink renders flower graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces an undirected bipartite graph with Graphviz: each
// type is a filled ellipse in its legend color, each record is a box, and an
// edge joins a record to each of its types. It is an alternative to the
// radial flower view for checking memberships on small datasets.
//
// # Usage
//
// Convert the legend and the projected records to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g.Legend(), g.Records(), nodelink.Options{Counts: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, opts)
//	png, err := nodelink.RenderPNG(ctx, dot, opts, 2.0)  // 2x scale
//
// # Hover
//
// [Options].Hover applies the same focus rule as the flower view: unfocused
// nodes and edges get an alpha channel matching OffFocusOpacity.
//
// # Dependencies
//
// Rendering uses github.com/goccy/go-graphviz, a WebAssembly build of
// Graphviz, so no system installation is needed for SVG. PDF and PNG go
// through rsvg-convert, see package render.
package nodelink
