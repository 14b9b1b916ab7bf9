package flower

import (
	"github.com/matzehuels/flowergraph/pkg/errors"
	"github.com/matzehuels/flowergraph/pkg/palette"
)

// Default configuration values.
const (
	DefaultWidth           = 600
	DefaultHeight          = 700
	DefaultFontSize        = 6
	DefaultRotation        = 45
	DefaultOffFocusOpacity = 0.4
	DefaultSeed            = 42
)

// Config configures one flower graph.
type Config struct {
	Width           float64          `json:"width" toml:"width"`
	Height          float64          `json:"height" toml:"height"`
	FontSize        float64          `json:"font_size" toml:"font_size"`
	Rotation        *float64         `json:"rotation,omitempty" toml:"rotation"`
	OffFocusOpacity float64          `json:"off_focus_opacity" toml:"off_focus_opacity"`
	Position        PositionOverride `json:"position,omitzero" toml:"position"`

	Hue        string             `json:"hue,omitempty" toml:"hue"`
	Luminosity palette.Luminosity `json:"luminosity,omitempty" toml:"luminosity"`
	Seed       uint64             `json:"seed,omitempty" toml:"seed"`

	InnerCircle CircleOptions `json:"inner_circle,omitzero" toml:"inner_circle"`
	Roots       RootsOptions  `json:"roots,omitzero" toml:"roots"`
	Petals      PetalsOptions `json:"petals,omitzero" toml:"petals"`
	Legend      LegendOptions `json:"legend,omitzero" toml:"legend"`
}

// CircleOptions configures the inner circle that carries the petals.
type CircleOptions struct {
	Radius          float64 `json:"radius,omitempty" toml:"radius"`
	Stroke          string  `json:"stroke,omitempty" toml:"stroke"`
	StrokeDasharray string  `json:"stroke_dasharray,omitempty" toml:"stroke_dasharray"`
	Hidden          bool    `json:"hidden,omitempty" toml:"hidden"`
}

// RootsOptions configures the outer ring of type nodes.
type RootsOptions struct {
	Radius     float64 `json:"radius,omitempty" toml:"radius"`
	NodeRadius float64 `json:"node_radius,omitempty" toml:"node_radius"`
	HideLabels bool    `json:"hide_labels,omitempty" toml:"hide_labels"`
}

// PetalsOptions configures the record nodes on the inner circle.
type PetalsOptions struct {
	NodeRadius float64 `json:"node_radius,omitempty" toml:"node_radius"`
	HideLabels bool    `json:"hide_labels,omitempty" toml:"hide_labels"`
}

// LegendOptions configures the legend band.
type LegendOptions struct {
	Columns    int     `json:"columns,omitempty" toml:"columns"`
	SwatchSize float64 `json:"swatch_size,omitempty" toml:"swatch_size"`
	HideCounts bool    `json:"hide_counts,omitempty" toml:"hide_counts"`
	Hidden     bool    `json:"hidden,omitempty" toml:"hidden"`
}

// DefaultConfig returns the configuration of an unconfigured graph.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields. A nil Rotation becomes
// [DefaultRotation]; an explicit 0 is kept. A zero OffFocusOpacity or Seed is
// treated as unset.
func (c *Config) SetDefaults() {
	if c.Rotation == nil {
		r := float64(DefaultRotation)
		c.Rotation = &r
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	if c.OffFocusOpacity == 0 {
		c.OffFocusOpacity = DefaultOffFocusOpacity
	}
	if c.Luminosity == "" {
		c.Luminosity = palette.DefaultLuminosity
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Roots.Radius == 0 {
		c.Roots.Radius = max(min(c.Width, c.Height-LegendBand)/2-40, 10)
	}
	if c.Roots.NodeRadius == 0 {
		c.Roots.NodeRadius = c.FontSize * 1.5
	}
	if c.InnerCircle.Radius == 0 {
		c.InnerCircle.Radius = c.Roots.Radius * 0.45
	}
	if c.InnerCircle.Stroke == "" {
		c.InnerCircle.Stroke = "#d0d0d0"
	}
	if c.Petals.NodeRadius == 0 {
		c.Petals.NodeRadius = c.FontSize / 2
	}
	if c.Legend.Columns == 0 {
		c.Legend.Columns = 4
	}
	if c.Legend.SwatchSize == 0 {
		c.Legend.SwatchSize = c.FontSize * 1.5
	}
}

// Validate checks the configuration after defaults have been applied.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= LegendBand {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas must be positive and taller than the %d unit legend band, got %vx%v", LegendBand, c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %v", c.FontSize)
	}
	if err := errors.ValidateOpacity(c.OffFocusOpacity); err != nil {
		return err
	}
	if c.Roots.Radius < 0 || c.InnerCircle.Radius < 0 || c.Roots.NodeRadius < 0 || c.Petals.NodeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radii must not be negative")
	}
	if c.Legend.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "legend columns must not be negative, got %d", c.Legend.Columns)
	}
	if c.InnerCircle.Stroke != "" {
		if err := errors.ValidateHexColor(c.InnerCircle.Stroke); err != nil {
			return err
		}
	}
	if err := palette.ValidateLuminosity(c.Luminosity); err != nil {
		return err
	}
	return palette.ValidateHue(c.Hue)
}

// Angle returns the rotation in degrees, [DefaultRotation] when unset.
func (c Config) Angle() float64 {
	if c.Rotation == nil {
		return DefaultRotation
	}
	return *c.Rotation
}

// clone copies the pointer fields so the result shares no state with c.
func (c Config) clone() Config {
	c.Rotation = clonePtr(c.Rotation)
	c.Position = PositionOverride{X: clonePtr(c.Position.X), Y: clonePtr(c.Position.Y)}
	return c
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Palette returns the color policy of the configuration.
func (c Config) Palette() palette.Policy {
	return palette.Policy{Hue: c.Hue, Luminosity: c.Luminosity, Seed: c.Seed}
}

// ViewBox returns the SVG viewBox covering the configured canvas.
func (c Config) ViewBox() string {
	return "0 0 " + num(c.Width) + " " + num(c.Height)
}
