// Package pipeline provides the core generation pipeline for SlideGen.
//
// The pipeline turns an abstract content document into a fully laid-out deck
// in three stages:
//
//  1. Assemble: synthesize front matter (cover, table of contents, closing)
//     around the authored sections
//  2. Resolve: bind every content node to a template from the catalog
//  3. Layout: compute concrete slide geometry, splitting overflowing
//     sections into continuation slides
//
// Both CLI and service deployments drive the same Runner, so caching and
// persistence behave identically across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Theme:  "default",
//	    Width:  960,
//	    Height: 540,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Deck.SlideCount())
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidegen/slidegen/pkg/cache"
	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/template"
)

// Default canvas and locale values shared by CLI and service entry points.
const (
	// DefaultWidth is the default canvas width in pixels (16:9).
	DefaultWidth = 960.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 540.0

	// DefaultLocale is the fallback content locale.
	DefaultLocale = "en"
)

// Options contains all configuration for a pipeline run. The struct supports
// JSON serialization for service requests.
type Options struct {
	// Theme names a theme from the catalog. Empty selects the default theme.
	Theme string `json:"theme,omitempty"`

	// Locale is the content locale, used for deck metadata.
	Locale string `json:"locale,omitempty"`

	// Width and Height define the canvas in pixels.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// CatalogPath points to a TOML template catalog. Empty uses the built-in
	// catalog. Ignored when Catalog is set directly.
	CatalogPath string `json:"catalog_path,omitempty"`

	// SkipFrontMatter disables synthesis of cover, table-of-contents and
	// closing sections.
	SkipFrontMatter bool `json:"skip_front_matter,omitempty"`

	// Refresh bypasses the cache and recomputes the deck.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Catalog *template.Store `json:"-"`
	Logger  *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Deck is the laid-out deck.
	Deck *deck.Deck

	// DocHash is the content hash of the assembled document, usable as a
	// stable identifier for the input.
	DocHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	SlideCount  int
	ResolveTime time.Duration
	LayoutTime  time.Duration
}

// CacheInfo tracks cache hits per pipeline stage.
type CacheInfo struct {
	ResolveHit bool // template assignments came from cache
	DeckHit    bool // the complete deck came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults. The
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas dimensions cannot be negative (%gx%g)", o.Width, o.Height)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Canvas returns the canvas size configured by the options.
func (o *Options) Canvas() deck.Size {
	return deck.Size{Width: o.Width, Height: o.Height}
}

// ShouldAssemble reports whether front matter synthesis is enabled.
func (o *Options) ShouldAssemble() bool {
	return !o.SkipFrontMatter
}

// DeckKeyOpts returns the cache key options for the final deck.
func (o *Options) DeckKeyOpts(catalogHash string) cache.DeckKeyOpts {
	return cache.DeckKeyOpts{
		CatalogHash:  catalogHash,
		Theme:        o.Theme,
		Locale:       o.Locale,
		CanvasWidth:  o.Width,
		CanvasHeight: o.Height,
	}
}
