// Package pipeline provides the flower graph pipeline shared by the CLI
// commands and the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: derive the ranked legend and the projected records from the
//     records, resolve the graph position and place the roots and petals
//  2. Render: write the placed scene in the requested formats (SVG, PNG,
//     PDF, JSON, and DOT for the node-link view)
//
// Both stages are cached: layouts by the dataset fingerprint and the layout
// options, artifacts by the layout hash and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    LabelField: "name",
//	    TypesField: "tags",
//	    Formats:    []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowergraph/pkg/cache"
	"github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/render/flower/rings"
	"github.com/matzehuels/flowergraph/pkg/render/flower/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultLabelField is the record field read for the label.
	DefaultLabelField = "label"

	// DefaultTypesField is the record field read for the types.
	DefaultTypesField = "types"

	// DefaultPNGScale is the scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// Visualization types.
const (
	VizTypeFlower   = "flower"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeFlower

// Styles.
const (
	StyleSimple = "simple"
)

// DefaultStyle is the default ring style.
const DefaultStyle = StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported ring styles.
var ValidStyles = map[string]bool{
	StyleSimple: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeFlower:   true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Record fields
	LabelField string `json:"label_field,omitempty"`
	TypesField string `json:"types_field,omitempty"`

	// Layout options
	Config flower.Config `json:"config"`
	Style  string        `json:"style,omitempty"`

	// Render options
	VizType    string   `json:"viz_type,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	HoverLabel *string  `json:"hover_label,omitempty"` // initial label track
	HoverTypes []string `json:"hover_types,omitempty"` // initial types track
	Static     bool     `json:"static,omitempty"`      // omit the hover script from SVG output
	Refresh    bool     `json:"refresh,omitempty"`     // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash fingerprints the records as seen through the accessor.
	DatasetHash string

	// Legend is the ranked legend.
	Legend []flower.LegendEntry

	// Records are the projected records in input order.
	Records []flower.ProjectedRecord

	// Position is the resolved graph center.
	Position flower.Position

	// Layout is the placed scene the artifacts were rendered from.
	Layout Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	TypeCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be: simple)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: flower, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.LabelField == "" {
		o.LabelField = DefaultLabelField
	}
	if o.TypesField == "" {
		o.TypesField = DefaultTypesField
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.Config.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the layout options.
func (o *Options) ValidateForLayout() error {
	if err := errors.ValidateFieldName(o.LabelField); err != nil {
		return err
	}
	if err := errors.ValidateFieldName(o.TypesField); err != nil {
		return err
	}
	if o.LabelField == o.TypesField {
		return errors.New(errors.ErrCodeInvalidField,
			"label and types must be read from different fields, both are %q", o.LabelField)
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates the render options.
func (o *Options) ValidateForRender() error {
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsFlower() && slices.Contains(o.Formats, FormatDOT) {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q requires viz_type %q", FormatDOT, VizTypeNodelink)
	}
	return nil
}

// IsFlower returns true if this is a flower visualization.
func (o *Options) IsFlower() bool {
	return o.VizType == "" || o.VizType == VizTypeFlower
}

// IsNodelink returns true if this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Accessor returns the field accessor for the configured record fields.
func (o *Options) Accessor() flower.FieldAccessor {
	return flower.FieldAccessor{LabelField: o.LabelField, TypesField: o.TypesField}
}

// HoverState returns the initial hover state.
func (o *Options) HoverState() flower.HoverState {
	s := flower.HoverState{Types: slices.Clone(o.HoverTypes)}
	if s.Types == nil {
		s.Types = []string{}
	}
	if o.HoverLabel != nil {
		s.Label, s.HasLabel = *o.HoverLabel, true
	}
	return s
}

// RingStyle returns the ring style collaborator for o.Style.
func (o *Options) RingStyle() rings.Style {
	return rings.Simple{}
}

// SVGOptions returns the SVG renderer options for o.
func (o *Options) SVGOptions() []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithStyle(o.RingStyle())}
	if o.Static {
		opts = append(opts, sink.WithStatic())
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	cfg, err := json.Marshal(o.Config)
	if err != nil {
		return cache.LayoutKeyOpts{}, fmt.Errorf("serialize config for cache key: %w", err)
	}
	return cache.LayoutKeyOpts{
		Width:      o.Config.Width,
		Height:     o.Config.Height,
		X:          o.Config.Position.X,
		Y:          o.Config.Position.Y,
		Rotation:   o.Config.Angle(),
		Hue:        o.Config.Hue,
		Luminosity: string(o.Config.Luminosity),
		Seed:       o.Config.Seed,
		Style:      o.Style,
		Config:     cache.Hash(cfg),
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:    o.VizType,
		Format:     format,
		HoverLabel: o.HoverLabel,
		HoverTypes: o.HoverTypes,
		Static:     o.Static,
	}
}
