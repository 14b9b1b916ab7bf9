// Package palette generates categorical color lists for flower graph types.
//
// The generator follows the well-known "randomColor" approach: a hue is picked
// from a named hue range, then saturation and brightness are picked within
// bounds that keep the color readable for the requested luminosity. All
// randomness comes from a seeded PCG source, so the same [Policy] and count
// always yield the same colors.
//
//	colors := palette.Generate(5, palette.Policy{Luminosity: palette.Bright, Seed: 42})
package palette

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/flowergraph/pkg/errors"
)

// Luminosity selects the saturation/brightness band of generated colors.
type Luminosity string

// Supported luminosity values.
const (
	Bright Luminosity = "bright"
	Light  Luminosity = "light"
	Dark   Luminosity = "dark"
	Random Luminosity = "random"
)

// DefaultLuminosity is used when a policy leaves Luminosity empty.
const DefaultLuminosity = Bright

// Policy configures color generation.
type Policy struct {
	// Hue is a named hue (red, orange, yellow, green, blue, purple, pink,
	// monochrome), a hex color whose hue is used, or a number in [0, 360].
	// Empty means the whole color wheel.
	Hue string `json:"hue,omitempty" toml:"hue"`

	// Luminosity defaults to [Bright].
	Luminosity Luminosity `json:"luminosity,omitempty" toml:"luminosity"`

	// Seed drives the PCG source.
	Seed uint64 `json:"seed,omitempty" toml:"seed"`
}

// Generate returns exactly n colors as "#rrggbb" strings.
// n <= 0 yields an empty, non-nil slice.
//
// When the hue range allows it, the range is split into n buckets and each
// color draws its hue from a different bucket, so neighbouring legend entries
// are less likely to share a hue.
func Generate(n int, p Policy) []string {
	if n <= 0 {
		return []string{}
	}
	lum := p.Luminosity
	if lum == "" {
		lum = DefaultLuminosity
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	hues := hueRange(p.Hue)
	buckets := rng.Perm(n)

	colors := make([]string, n)
	for i := range colors {
		h := pickHue(rng, hues, buckets[i], n)
		s := pickSaturation(rng, h, p.Hue, lum)
		v := pickBrightness(rng, h, s, lum)
		colors[i] = colorful.Hsv(math.Mod(float64(h)+360, 360), float64(s)/100, float64(v)/100).Hex()
	}
	return colors
}

// ValidateLuminosity reports whether l is a supported luminosity.
// The empty string is accepted and means [DefaultLuminosity].
func ValidateLuminosity(l Luminosity) error {
	switch l {
	case "", Bright, Light, Dark, Random:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidLuminosity,
		"invalid luminosity: %q (must be one of: bright, light, dark, random)", l)
}

// ValidateHue reports whether hue can be resolved to a hue range.
func ValidateHue(hue string) error {
	if hue == "" {
		return nil
	}
	if _, ok := namedHues[strings.ToLower(hue)]; ok {
		return nil
	}
	if _, ok := parseHue(hue); ok {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidHue,
		"invalid hue: %q (use a color name, a hex color or a number in [0, 360])", hue)
}

// pickHue draws a hue from the bucket-th of n equal slices of r.
func pickHue(rng *rand.Rand, r [2]int, bucket, n int) int {
	lo, hi := r[0], r[1]
	if width := hi - lo + 1; width >= n && n > 1 {
		step := float64(width) / float64(n)
		lo = r[0] + int(math.Floor(step*float64(bucket)))
		hi = r[0] + int(math.Floor(step*float64(bucket+1))) - 1
		hi = max(hi, lo)
	}
	h := randomWithin(rng, lo, hi)
	if h < 0 {
		h += 360
	}
	return h
}

func pickSaturation(rng *rand.Rand, hue int, hueName string, lum Luminosity) int {
	if strings.EqualFold(hueName, "monochrome") {
		return 0
	}
	if lum == Random {
		return randomWithin(rng, 0, 100)
	}

	sMin, sMax := colorInfo(hue).saturationRange()
	switch lum {
	case Bright:
		sMin = 55
	case Dark:
		sMin = sMax - 10
	case Light:
		sMax = 55
	}
	return randomWithin(rng, sMin, sMax)
}

func pickBrightness(rng *rand.Rand, hue, saturation int, lum Luminosity) int {
	bMin, bMax := minimumBrightness(hue, saturation), 100
	switch lum {
	case Dark:
		bMax = bMin + 20
	case Light:
		bMin = (bMax + bMin) / 2
	case Random:
		bMin, bMax = 0, 100
	}
	return randomWithin(rng, bMin, bMax)
}

func minimumBrightness(hue, saturation int) int {
	bounds := colorInfo(hue).lowerBounds
	for i := 0; i < len(bounds)-1; i++ {
		s1, v1 := float64(bounds[i][0]), float64(bounds[i][1])
		s2, v2 := float64(bounds[i+1][0]), float64(bounds[i+1][1])
		s := float64(saturation)
		if s >= s1 && s <= s2 {
			m := (v2 - v1) / (s2 - s1)
			b := v1 - m*s1
			return int(math.Round(m*s + b))
		}
	}
	return 0
}

// randomWithin returns an integer in [lo, hi].
func randomWithin(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func hueRange(hue string) [2]int {
	if hue == "" {
		return [2]int{0, 360}
	}
	if c, ok := namedHues[strings.ToLower(hue)]; ok {
		return c.hueRange
	}
	if h, ok := parseHue(hue); ok {
		return [2]int{h, h}
	}
	return [2]int{0, 360}
}

// parseHue resolves a numeric or hex hue.
func parseHue(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 360 {
			return 0, false
		}
		return n, true
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(expandHex(s))
		if err != nil {
			return 0, false
		}
		h, _, _ := c.Hsv()
		return int(math.Round(h)) % 360, true
	}
	return 0, false
}

// expandHex turns #rgb into #rrggbb; other inputs pass through.
func expandHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
