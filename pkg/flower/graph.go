package flower

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"slices"
	"sync"
)

// Graph orchestrates the derivation of one flower graph and owns its hover
// coordinator.
//
// Derived values are memoised by value keys: the dataset fingerprint for the
// taxonomy, the palette policy plus type count for the colors, and the canvas
// size plus override for the position. Hover changes touch none of them.
// A Graph is safe for concurrent use. Getters return copies, so callers may
// modify what they receive without touching the memoised values.
type Graph[R any] struct {
	mu      sync.Mutex
	records []R
	acc     Accessor[R]
	cfg     Config
	version int
	hover   *Coordinator

	fingerprint memo[int, string]
	types       memo[string, []string]
	colors      memo[paletteKey, []string]
	legend      memo[legendKey, []LegendEntry]
	projected   memo[legendKey, []ProjectedRecord]
	position    memo[positionKey, Position]

	roots  []Root
	petals []Petal
}

type paletteKey struct {
	hue        string
	luminosity string
	seed       uint64
	n          int
}

type legendKey struct {
	fingerprint string
	palette     paletteKey
}

type positionKey struct {
	width, height float64
	hasX          bool
	x             float64
	hasY          bool
	y             float64
}

// Stats counts how often each derived value has been computed.
type Stats struct {
	Fingerprints int `json:"fingerprints"`
	Types        int `json:"types"`
	Colors       int `json:"colors"`
	Legend       int `json:"legend"`
	Records      int `json:"records"`
	Position     int `json:"position"`
}

// Scene is everything a renderer needs for one pass.
type Scene struct {
	Config    Config            `json:"config"`
	Legend    []LegendEntry     `json:"legend"`
	Records   []ProjectedRecord `json:"records"`
	Position  Position          `json:"position"`
	Transform string            `json:"transform"`
	Hover     HoverState        `json:"hover"`
}

// New returns a graph over records. cfg is completed with SetDefaults.
func New[R any](acc Accessor[R], records []R, cfg Config) *Graph[R] {
	cfg.SetDefaults()
	return &Graph[R]{
		records: records,
		acc:     acc,
		cfg:     cfg.clone(),
		hover:   NewCoordinator(),
	}
}

// SetRecords replaces the record set. Derived values are recomputed lazily,
// and only if the accessor outputs actually differ.
func (g *Graph[R]) SetRecords(records []R) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = records
	g.version++
}

// SetAccessor replaces the accessor.
func (g *Graph[R]) SetAccessor(acc Accessor[R]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.acc = acc
	g.version++
}

// SetConfig replaces the configuration after completing it with SetDefaults.
func (g *Graph[R]) SetConfig(cfg Config) {
	cfg.SetDefaults()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg.clone()
}

// Config returns the effective configuration.
func (g *Graph[R]) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.clone()
}

// Hover returns the shared hover coordinator.
func (g *Graph[R]) Hover() *Coordinator { return g.hover }

// Fingerprint returns the hex SHA-256 of the labels and type lists the
// accessor extracts from the records.
func (g *Graph[R]) Fingerprint() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fingerprintLocked()
}

// Types returns the distinct types in order of first appearance.
func (g *Graph[R]) Types() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.typesLocked())
}

// Colors returns one color per entry of Types.
func (g *Graph[R]) Colors() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.colorsLocked())
}

// Legend returns the ranked legend, the canonical type order.
func (g *Graph[R]) Legend() []LegendEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.legendLocked())
}

// Records returns the projected records.
func (g *Graph[R]) Records() []ProjectedRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneRecords(g.recordsLocked())
}

// Position returns the shared center of rotation.
func (g *Graph[R]) Position() Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.positionLocked()
}

// Transform returns the rotation transform of the roots, petals and
// connections group.
func (g *Graph[R]) Transform() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.positionLocked().Rotate(g.cfg.Angle())
}

// Snapshot returns the derived values, the transform and the hover state.
func (g *Graph[R]) Snapshot() Scene {
	g.mu.Lock()
	defer g.mu.Unlock()
	pos := g.positionLocked()
	return Scene{
		Config:    g.cfg.clone(),
		Legend:    slices.Clone(g.legendLocked()),
		Records:   cloneRecords(g.recordsLocked()),
		Position:  pos,
		Transform: pos.Rotate(g.cfg.Angle()),
		Hover:     g.hover.State(),
	}
}

// ReportRoots stores the roots placed by the latest render pass.
func (g *Graph[R]) ReportRoots(roots []Root) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = slices.Clone(roots)
}

// ReportPetals stores the petals placed by the latest render pass.
func (g *Graph[R]) ReportPetals(petals []Petal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.petals = clonePetals(petals)
}

// Roots returns the roots reported by the latest render pass.
func (g *Graph[R]) Roots() []Root {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.roots)
}

// Petals returns the petals reported by the latest render pass.
func (g *Graph[R]) Petals() []Petal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return clonePetals(g.petals)
}

// Stats returns the recompute counters.
func (g *Graph[R]) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		Fingerprints: g.fingerprint.runs,
		Types:        g.types.runs,
		Colors:       g.colors.runs,
		Legend:       g.legend.runs,
		Records:      g.projected.runs,
		Position:     g.position.runs,
	}
}

func (g *Graph[R]) fingerprintLocked() string {
	return g.fingerprint.get(g.version, func() string {
		return Fingerprint(g.records, g.acc)
	})
}

func (g *Graph[R]) typesLocked() []string {
	return g.types.get(g.fingerprintLocked(), func() []string {
		return ExtractTypes(g.records, g.acc.Types)
	})
}

func (g *Graph[R]) paletteKeyLocked() paletteKey {
	return paletteKey{
		hue:        g.cfg.Hue,
		luminosity: string(g.cfg.Luminosity),
		seed:       g.cfg.Seed,
		n:          len(g.typesLocked()),
	}
}

func (g *Graph[R]) colorsLocked() []string {
	key := g.paletteKeyLocked()
	return g.colors.get(key, func() []string {
		return AssignColors(key.n, g.cfg.Palette())
	})
}

func (g *Graph[R]) legendLocked() []LegendEntry {
	key := legendKey{fingerprint: g.fingerprintLocked(), palette: g.paletteKeyLocked()}
	return g.legend.get(key, func() []LegendEntry {
		return RankLegend(g.typesLocked(), g.colorsLocked(), g.records, g.acc.Types)
	})
}

func (g *Graph[R]) recordsLocked() []ProjectedRecord {
	key := legendKey{fingerprint: g.fingerprintLocked(), palette: g.paletteKeyLocked()}
	return g.projected.get(key, func() []ProjectedRecord {
		return ProjectRecords(g.records, g.acc, g.legendLocked())
	})
}

func (g *Graph[R]) positionLocked() Position {
	hasX, x, hasY, y := g.cfg.Position.key()
	key := positionKey{width: g.cfg.Width, height: g.cfg.Height, hasX: hasX, x: x, hasY: hasY, y: y}
	return g.position.get(key, func() Position {
		return ResolvePosition(g.cfg.Width, g.cfg.Height, g.cfg.Position)
	})
}

func cloneRecords(rs []ProjectedRecord) []ProjectedRecord {
	out := slices.Clone(rs)
	for i := range out {
		out[i].Types = slices.Clone(out[i].Types)
	}
	return out
}

func clonePetals(ps []Petal) []Petal {
	out := slices.Clone(ps)
	for i := range out {
		out[i].Types = slices.Clone(out[i].Types)
	}
	return out
}

// Fingerprint hashes the labels and type lists acc extracts from records.
// Two record sets with equal fingerprints derive the same legend.
func Fingerprint[R any](records []R, acc Accessor[R]) string {
	h := sha256.New()
	var n [8]byte
	write := func(s string) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	for _, r := range records {
		write(acc.Label(r))
		types := acc.Types(r)
		binary.LittleEndian.PutUint64(n[:], uint64(len(types)))
		h.Write(n[:])
		for _, t := range types {
			write(t)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
