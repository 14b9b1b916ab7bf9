// Package pkg provides the core libraries for flowergraph visualization.
//
// # Overview
//
// Flowergraph draws records that each carry a set of types as a flower:
// every type becomes a colored root on an outer ring, every record a petal
// on an inner ring, and each membership a connection between them. The pkg
// directory is organized into four main areas:
//
//  1. [flower] - Domain logic (taxonomy, palette, legend, projection, hover)
//  2. [render] - Visual output (radial rings, SVG/PNG/PDF/JSON sinks, node-link DOT)
//  3. [pipeline] - Orchestration (records → layout → render) with caching
//  4. [cache] - Cache backends (file, Redis, MongoDB, null)
//
// # Architecture
//
// The typical data flow through flowergraph:
//
//	JSON/YAML/TOML record file
//	         ↓
//	    [io] package (read records)
//	         ↓
//	    [flower] package (derive types, colors, legend, projected records)
//	         ↓
//	    [render/flower/sink] package (place nodes + render)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/flowergraph/pkg/flower"
//	    "github.com/matzehuels/flowergraph/pkg/render/flower/rings"
//	    "github.com/matzehuels/flowergraph/pkg/render/flower/sink"
//	)
//
//	acc := flower.FieldAccessor{LabelField: "name", TypesField: "tags"}
//	g := flower.New[flower.Record](acc, records, flower.DefaultConfig())
//	g.Hover().EnterTypes([]string{"go"})
//
//	scene, nodes := sink.Place(g, rings.Simple{})
//	svg := sink.RenderSVG(scene, nodes)
//
// # Main Packages
//
// [flower] - The derivation chain and the hover coordinator. [flower.Graph]
// memoises every derived value by value keys.
//
// [palette] - Seeded categorical color generation by hue and luminosity.
//
// [render/flower/rings] - Geometry of the outer and inner rings and the
// [rings.Style] interface.
//
// [render/flower/sink] - Placement plus SVG, PNG, PDF and JSON output.
//
// [render/nodelink] - Graphviz node-link diagrams of records and types.
//
// [render] - Format conversion (SVG to PDF/PNG) through rsvg-convert.
//
// [pipeline] - The cache-aware layout and render stages shared by every
// command of the CLI, including the HTTP server.
//
// [cache] - [cache.Cache] backends and the [cache.Keyer] that builds layout
// and artifact keys.
//
// [io] - Record import and generic export in JSON, YAML and TOML.
//
// [errors] - Coded errors with HTTP status mapping.
//
// [observability] - Hook interfaces for pipeline, cache, HTTP and hover
// events. internal/metrics implements them with Prometheus.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/flower/...  # Specific package
//	go test -run Example      # Examples only
//
// [flower]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/flower
// [palette]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/palette
// [render]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/render
// [render/flower/rings]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/render/flower/rings
// [render/flower/sink]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/render/flower/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/observability
// [flower.Graph]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/flower#Graph
// [rings.Style]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/render/flower/rings#Style
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/cache#Cache
// [cache.Keyer]: https://pkg.go.dev/github.com/matzehuels/flowergraph/pkg/cache#Keyer
package pkg
