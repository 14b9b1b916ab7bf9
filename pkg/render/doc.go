// Package render provides output rendering for flower graphs.
//
// # Overview
//
// This package contains the rendering pipeline that turns a derived flower
// graph into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The radial flower visualization (in the flower/rings and flower/sink subpackages)
//   - Node-link diagrams of types and records (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the flower and the
// node-link renderers use them.
//
//	svg := sink.RenderSVG(scene, placed)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Flower Visualization
//
// The flower/rings subpackage holds the four drawing collaborators (legend,
// roots, petals, connections) behind small interfaces; flower/sink composes
// them into an interactive SVG document, or exports the placed nodes as JSON.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the bipartite type/record graph with
// Graphviz, which is useful to check memberships on small datasets.
package render
