// Package cache provides the artifact cache of the flowergraph pipeline.
//
// # Overview
//
// The pipeline caches two things: the layout of a dataset (ranked legend,
// projected records and placed nodes, as JSON) and each rendered artifact
// (SVG, PNG, PDF, JSON). Both are keyed by content hashes, so a cache entry
// can never be served for different data or options.
//
// # Backends
//
//   - [FileCache]: one file per entry under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for several `flowergraph serve` instances
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: disables caching
//
// [Open] picks the backend from a URL:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0", dir)
//
// # Keys
//
// A [Keyer] turns a dataset hash and options into keys. [ScopedKeyer]
// prefixes every key, to keep several datasets or tenants apart in a shared
// backend.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys the derived layout of a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys one rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Rotation   float64  `json:"rotation"`
	Hue        string   `json:"hue,omitempty"`
	Luminosity string   `json:"luminosity,omitempty"`
	Seed       uint64   `json:"seed"`
	Style      string   `json:"style,omitempty"`
	Config     string   `json:"config,omitempty"` // hash of the remaining ring options
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	VizType    string   `json:"viz_type"`
	Format     string   `json:"format"`
	HoverLabel *string  `json:"hover_label,omitempty"`
	HoverTypes []string `json:"hover_types,omitempty"`
	Static     bool     `json:"static,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
