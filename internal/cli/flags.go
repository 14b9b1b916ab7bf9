package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/palette"
	"github.com/matzehuels/flowergraph/pkg/pipeline"
)

// graphFlags are the flags shared by every command that reads a record file.
// Values resolve in three layers: built-in defaults, the config file, then
// flags that were set explicitly.
type graphFlags struct {
	config     string
	label      string
	types      string
	style      string
	width      float64
	height     float64
	x, y       float64
	rotation   float64
	fontSize   float64
	opacity    float64
	hue        string
	luminosity string
	seed       uint64
	hoverLabel string
	hoverTypes []string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	defaults := flower.DefaultConfig()

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default: ./"+configFileName+" if present)")
	fl.StringVarP(&f.label, "label", "l", pipeline.DefaultLabelField, "record field holding the label")
	fl.StringVarP(&f.types, "types", "T", pipeline.DefaultTypesField, "record field holding the types")
	fl.StringVar(&f.style, "style", pipeline.DefaultStyle, "ring style: simple")
	fl.Float64Var(&f.width, "width", defaults.Width, "canvas width")
	fl.Float64Var(&f.height, "height", defaults.Height, "canvas height")
	fl.Float64Var(&f.x, "x", 0, "graph center x (default: width/2)")
	fl.Float64Var(&f.y, "y", 0, "graph center y (default: (height+100)/2)")
	fl.Float64Var(&f.rotation, "rotation", defaults.Angle(), "rotation of the graph in degrees")
	fl.Float64Var(&f.fontSize, "font-size", defaults.FontSize, "label font size")
	fl.Float64Var(&f.opacity, "opacity", defaults.OffFocusOpacity, "opacity of off-focus elements")
	fl.StringVar(&f.hue, "hue", "", "palette hue: a color name, a hex color or 0-360")
	fl.StringVar(&f.luminosity, "luminosity", string(palette.DefaultLuminosity), "palette luminosity: bright, light, dark, random")
	fl.Uint64Var(&f.seed, "seed", defaults.Seed, "palette seed")
	fl.StringVar(&f.hoverLabel, "hover-label", "", "initially hovered record label")
	fl.StringSliceVar(&f.hoverTypes, "hover-type", nil, "initially hovered type (repeatable)")
}

// options resolves the pipeline options for cmd.
func (f *graphFlags) options(cmd *cobra.Command) (pipeline.Options, fileConfig, error) {
	fc, err := loadConfig(f.config)
	if err != nil {
		return pipeline.Options{}, fc, err
	}

	opts := pipeline.Options{
		LabelField: fc.Label,
		TypesField: fc.Types,
		Style:      fc.Style,
		VizType:    fc.Viz,
		Formats:    fc.Formats,
		Config:     fc.Graph,
	}

	changed := cmd.Flags().Changed
	if changed("label") || opts.LabelField == "" {
		opts.LabelField = f.label
	}
	if changed("types") || opts.TypesField == "" {
		opts.TypesField = f.types
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("width") {
		opts.Config.Width = f.width
	}
	if changed("height") {
		opts.Config.Height = f.height
	}
	if changed("x") {
		opts.Config.Position.X = &f.x
	}
	if changed("y") {
		opts.Config.Position.Y = &f.y
	}
	if changed("rotation") {
		opts.Config.Rotation = &f.rotation
	}
	if changed("font-size") {
		opts.Config.FontSize = f.fontSize
	}
	if changed("opacity") {
		opts.Config.OffFocusOpacity = f.opacity
	}
	if changed("hue") {
		opts.Config.Hue = f.hue
	}
	if changed("luminosity") {
		opts.Config.Luminosity = palette.Luminosity(f.luminosity)
	}
	if changed("seed") {
		opts.Config.Seed = f.seed
	}
	if changed("hover-label") {
		opts.HoverLabel = &f.hoverLabel
	}
	if changed("hover-type") {
		opts.HoverTypes = f.hoverTypes
	}

	opts.SetLayoutDefaults()
	if err := opts.ValidateForLayout(); err != nil {
		return pipeline.Options{}, fc, err
	}
	return opts, fc, nil
}
