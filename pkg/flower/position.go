package flower

import (
	"fmt"
	"math"
	"strconv"
)

// LegendBand is the height reserved at the top of the canvas for the legend.
const LegendBand = 100

// Position is the shared center of rotation of roots, petals and connections.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionOverride pins one or both coordinates of the center. A nil
// coordinate falls back to its default; an explicit zero is honoured.
type PositionOverride struct {
	X *float64 `json:"x,omitempty" toml:"x"`
	Y *float64 `json:"y,omitempty" toml:"y"`
}

// Fixed returns an override pinning both coordinates.
func Fixed(x, y float64) PositionOverride {
	return PositionOverride{X: &x, Y: &y}
}

// key flattens the override into a comparable value.
func (o PositionOverride) key() (hasX bool, x float64, hasY bool, y float64) {
	if o.X != nil {
		hasX, x = true, *o.X
	}
	if o.Y != nil {
		hasY, y = true, *o.Y
	}
	return
}

// ResolvePosition returns the center for a width x height canvas: half the
// width horizontally and the midpoint of the area below the legend band
// vertically, unless overridden.
func ResolvePosition(width, height float64, o PositionOverride) Position {
	p := Position{
		X: width / 2,
		Y: (height-LegendBand)/2 + LegendBand,
	}
	if o.X != nil {
		p.X = *o.X
	}
	if o.Y != nil {
		p.Y = *o.Y
	}
	return p
}

// Rotate returns the SVG transform rotating by deg degrees around p.
func (p Position) Rotate(deg float64) string {
	return "rotate(" + num(deg) + ", " + num(p.X) + ", " + num(p.Y) + ")"
}

// RotatePoint rotates q by deg degrees clockwise around p, matching the
// direction of the SVG rotate transform.
func (p Position) RotatePoint(q Position, deg float64) Position {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := q.X-p.X, q.Y-p.Y
	return Position{
		X: p.X + dx*cos - dy*sin,
		Y: p.Y + dx*sin + dy*cos,
	}
}

// Polar returns the point at radius r and angle a (radians) around p.
// Angle 0 points up and angles grow clockwise.
func (p Position) Polar(r, a float64) Position {
	sin, cos := math.Sincos(a)
	return Position{X: p.X + r*sin, Y: p.Y - r*cos}
}

// String formats p as "x,y".
func (p Position) String() string {
	return fmt.Sprintf("%s,%s", num(p.X), num(p.Y))
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
