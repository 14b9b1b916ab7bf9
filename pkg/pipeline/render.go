package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flowergraph/pkg/render/flower/sink"
	"github.com/matzehuels/flowergraph/pkg/render/nodelink"
)

// RenderFromLayout renders the layout in every requested format.
func RenderFromLayout(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderFlower(ctx, l, opts)
}

// renderFlower generates flower outputs.
func renderFlower(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	svgOpts := opts.SVGOptions()
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l.Scene, l.Nodes, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l.Scene, l.Nodes,
				sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(DefaultPNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l.Scene, l.Nodes, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l.Scene, l.Nodes, sink.WithAbsolute(), sink.WithIndent())
		default:
			return nil, fmt.Errorf("unsupported flower format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs from the legend and records of
// the layout. The placed nodes are not used; Graphviz lays the graph out.
func renderNodelink(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	nlOpts := nodelink.Options{
		Counts:          !l.Scene.Config.Legend.HideCounts,
		Hover:           l.Scene.Hover,
		OffFocusOpacity: l.Scene.Config.OffFocusOpacity,
	}
	dot := nodelink.ToDOT(l.Scene.Legend, l.Scene.Records, nlOpts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot, nlOpts)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, nlOpts, DefaultPNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot, nlOpts)
		case FormatJSON:
			data, err = sink.RenderJSON(l.Scene, l.Nodes, sink.WithAbsolute(), sink.WithIndent())
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
