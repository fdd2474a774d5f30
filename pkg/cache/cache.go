// Package cache provides pluggable byte caches for pipeline results.
//
// The engine caches two artifact classes: resolved trees (keyed by content
// and catalog) and fully laid-out decks (keyed by content, catalog and layout
// options). Backends range from a local file cache for CLI usage to Redis for
// shared deployments; a null backend disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration; a negative ttl
	// is treated as already expired.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per artifact class. Decks are cheap to recompute, so entries
// are shorter-lived than the catalog inputs they derive from.
const (
	// ResolveTTL applies to cached resolved trees.
	ResolveTTL = 1 * time.Hour

	// DeckTTL applies to cached laid-out decks.
	DeckTTL = 24 * time.Hour
)

// DeckKeyOpts captures every input besides the document that affects layout
// output. Two requests with equal document hashes and equal options are
// guaranteed to produce identical decks.
type DeckKeyOpts struct {
	CatalogHash  string  `json:"catalog_hash"`
	Theme        string  `json:"theme"`
	Locale       string  `json:"locale"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// Keyer generates cache keys for the engine's artifact classes. Implementations
// must be deterministic: equal inputs yield equal keys.
type Keyer interface {
	// ResolveKey generates a key for a cached resolution result.
	ResolveKey(docHash, catalogHash string) string

	// DeckKey generates a key for a cached laid-out deck.
	DeckKey(docHash string, opts DeckKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResolveKey generates a key for a cached resolution result.
func (k *DefaultKeyer) ResolveKey(docHash, catalogHash string) string {
	return hashKey("resolve", docHash, catalogHash)
}

// DeckKey generates a key for a cached laid-out deck.
func (k *DefaultKeyer) DeckKey(docHash string, opts DeckKeyOpts) string {
	return hashKey("deck", docHash, opts)
}
