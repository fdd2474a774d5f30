package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidegen/slidegen/pkg/cache"
	"github.com/slidegen/slidegen/pkg/content"
	"github.com/slidegen/slidegen/pkg/deck"
	"github.com/slidegen/slidegen/pkg/errors"
	"github.com/slidegen/slidegen/pkg/layout"
	"github.com/slidegen/slidegen/pkg/observability"
	"github.com/slidegen/slidegen/pkg/store"
	"github.com/slidegen/slidegen/pkg/template"
)

// Runner encapsulates pipeline execution with caching and optional deck
// persistence. CLI and service entry points share one Runner implementation
// so caching behaves identically everywhere.
//
// The Runner holds no per-request state; multiple goroutines can execute
// concurrently on the same instance with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store, when set, persists every generated deck.
	Store store.Store
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer, a nil logger uses the package default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete assemble → resolve → layout pipeline.
//
// On layout failure the returned Result still carries a deck with the slides
// completed before the failure, so callers can surface partial output
// alongside the error.
func (r *Runner) Execute(ctx context.Context, doc *content.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	catStore, err := r.catalogStore(opts)
	if err != nil {
		return nil, err
	}
	theme, err := catStore.Theme(opts.Theme)
	if err != nil {
		return nil, err
	}

	if opts.ShouldAssemble() {
		doc, err = AssembleFrontMatter(doc)
		if err != nil {
			return nil, err
		}
	}

	docHash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}
	catHash := hashCatalog(catStore)

	result := &Result{DocHash: docHash}
	result.Stats.NodeCount = doc.NodeCount()

	// Fast path: the complete deck is cached.
	deckKey := r.Keyer.DeckKey(docHash, opts.DeckKeyOpts(catHash))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, deckKey); err == nil && hit {
			if d, err := deck.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "deck")
				result.Deck = d
				result.Stats.SlideCount = d.SlideCount()
				result.CacheInfo.DeckHit = true
				r.Logger.Debug("deck cache hit", "slides", d.SlideCount())
				return result, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "deck")
	}

	lctx := layout.NewContext(theme, opts.Locale)

	// Stage: resolve.
	resolveStart := time.Now()
	observability.Engine().OnResolveStart(ctx, docHash, result.Stats.NodeCount)
	rt, resolveHit, err := r.resolveTree(ctx, doc, catStore.Catalog(), lctx, docHash, catHash, opts.Refresh)
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Engine().OnResolveComplete(ctx, docHash, result.Stats.ResolveTime, err)
	if err != nil {
		return result, err
	}
	result.CacheInfo.ResolveHit = resolveHit

	r.Logger.Info("resolved templates",
		"nodes", result.Stats.NodeCount,
		"cached", resolveHit,
		"duration", result.Stats.ResolveTime)

	// Stage: layout.
	layoutStart := time.Now()
	observability.Engine().OnLayoutStart(ctx, docHash, result.Stats.NodeCount)
	slides, layoutErr := layout.Compute(rt, opts.Canvas(), lctx)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Engine().OnLayoutComplete(ctx, docHash, len(slides), result.Stats.LayoutTime, layoutErr)

	d := &deck.Deck{
		ID:        lctx.RequestID(),
		Title:     doc.Title(),
		Locale:    opts.Locale,
		Canvas:    opts.Canvas(),
		Theme:     themeInfo(theme),
		Slides:    slides,
		CreatedAt: time.Now().UTC(),
	}
	result.Deck = d
	result.Stats.SlideCount = d.SlideCount()

	if layoutErr != nil {
		// Partial deck stays on the result for the caller to inspect.
		return result, layoutErr
	}

	for _, s := range slides {
		observability.Engine().OnSlideEmitted(ctx, s.Template, s.IsContinuation())
	}

	r.Logger.Info("computed layout",
		"slides", d.SlideCount(),
		"duration", result.Stats.LayoutTime)

	if data, err := deck.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, deckKey, data, cache.DeckTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "deck", len(data))
		}
	}

	if r.Store != nil {
		if err := r.saveDeck(ctx, d); err != nil {
			// Persistence failure does not invalidate the computed deck.
			observability.Store().OnStoreError(ctx, "save", err)
			r.Logger.Warn("deck not persisted", "deck", d.ID, "err", err)
		}
	}

	return result, nil
}

// Resolve runs only the resolution stage and returns the resolved tree.
func (r *Runner) Resolve(ctx context.Context, doc *content.Document, opts Options) (*layout.ResolvedTree, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	catStore, err := r.catalogStore(opts)
	if err != nil {
		return nil, err
	}
	theme, err := catStore.Theme(opts.Theme)
	if err != nil {
		return nil, err
	}
	docHash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}

	lctx := layout.NewContext(theme, opts.Locale)
	rt, _, err := r.resolveTree(ctx, doc, catStore.Catalog(), lctx, docHash, hashCatalog(catStore), opts.Refresh)
	return rt, err
}

// resolveTree resolves with assignment caching. A cached assignment map that
// no longer applies cleanly is treated as a miss.
func (r *Runner) resolveTree(ctx context.Context, doc *content.Document, catalog *template.Catalog, lctx *layout.Context, docHash, catHash string, refresh bool) (*layout.ResolvedTree, bool, error) {
	key := r.Keyer.ResolveKey(docHash, catHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var asg assignments
			if err := json.Unmarshal(data, &asg); err == nil {
				if rt, err := applyAssignments(doc, catalog, asg); err == nil {
					observability.Cache().OnCacheHit(ctx, "resolve")
					return rt, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "resolve")
	}

	rt, err := layout.Resolve(doc, catalog, lctx)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(flattenAssignments(rt)); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.ResolveTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "resolve", len(data))
		}
	}
	return rt, false, nil
}

// saveDeck persists a deck, retrying transient backend failures.
func (r *Runner) saveDeck(ctx context.Context, d *deck.Deck) error {
	start := time.Now()
	err := cache.RetryWithBackoff(ctx, func() error {
		if err := r.Store.Save(ctx, d); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	observability.Store().OnDeckSaved(ctx, d.ID, d.SlideCount(), time.Since(start))
	return nil
}

// catalogStore returns the template store for a run: the one passed in
// options, one loaded from a catalog file, or the built-in default.
func (r *Runner) catalogStore(opts Options) (*template.Store, error) {
	if opts.Catalog != nil {
		return opts.Catalog, nil
	}
	if opts.CatalogPath != "" {
		if err := errors.ValidatePath(opts.CatalogPath); err != nil {
			return nil, err
		}
		return template.Load(opts.CatalogPath)
	}
	return template.Default(), nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashDocument computes the content hash of a document from its canonical
// JSON form.
func hashDocument(doc *content.Document) (string, error) {
	var buf bytes.Buffer
	if err := content.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// hashCatalog fingerprints a template store so cache entries are invalidated
// when the catalog or its themes change.
func hashCatalog(s *template.Store) string {
	c := s.Catalog()
	snapshot := struct {
		Specs  []*template.Spec `json:"specs"`
		Themes []template.Theme `json:"themes"`
	}{}
	for _, name := range c.Names() {
		spec, _ := c.Get(name)
		snapshot.Specs = append(snapshot.Specs, spec)
	}
	for _, name := range s.ThemeNames() {
		th, _ := s.Theme(name)
		snapshot.Themes = append(snapshot.Themes, th)
	}
	data, _ := json.Marshal(snapshot)
	return cache.Hash(data)
}

// themeInfo converts a catalog theme into the deck's embedded snapshot.
func themeInfo(t template.Theme) deck.ThemeInfo {
	return deck.ThemeInfo{
		Name:       t.Name,
		Background: t.Background,
		Accent:     t.Accent,
		TextColor:  t.TextColor,
		FontFamily: t.FontFamily,
	}
}
