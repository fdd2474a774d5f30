// Package observability provides hooks for metrics, tracing, and logging.
//
// The engine emits events through hook interfaces with no-op defaults, so the
// core stays free of observability framework dependencies. A deployment
// registers its own implementations at startup:
//
//	func main() {
//	    observability.SetEngineHooks(&otelEngineHooks{})
//	    observability.SetCacheHooks(&promCacheHooks{})
//	    // ... run application
//	}
//
// Libraries emit events without knowing what, if anything, consumes them:
//
//	observability.Engine().OnResolveStart(ctx, docID, nodeCount)
//	// ... resolve ...
//	observability.Engine().OnResolveComplete(ctx, docID, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from the resolution and layout passes.
type EngineHooks interface {
	// Resolution events.
	OnResolveStart(ctx context.Context, docID string, nodeCount int)
	OnResolveComplete(ctx context.Context, docID string, duration time.Duration, err error)

	// Layout events.
	OnLayoutStart(ctx context.Context, docID string, nodeCount int)
	OnLayoutComplete(ctx context.Context, docID string, slideCount int, duration time.Duration, err error)

	// OnSlideEmitted fires once per produced slide, continuations included.
	OnSlideEmitted(ctx context.Context, templateName string, continuation bool)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit for an artifact class.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss for an artifact class.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write and its payload size.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// StoreHooks receives events from deck persistence.
type StoreHooks interface {
	// OnDeckSaved records a successful deck write.
	OnDeckSaved(ctx context.Context, deckID string, slideCount int, duration time.Duration)

	// OnStoreError records a failed store operation.
	OnStoreError(ctx context.Context, op string, err error)
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnResolveStart(context.Context, string, int)                       {}
func (NoopEngineHooks) OnResolveComplete(context.Context, string, time.Duration, error)   {}
func (NoopEngineHooks) OnLayoutStart(context.Context, string, int)                        {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopEngineHooks) OnSlideEmitted(context.Context, string, bool) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnDeckSaved(context.Context, string, int, time.Duration) {}
func (NoopStoreHooks) OnStoreError(context.Context, string, error)             {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks. Call once at application
// startup before any pipeline runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults. Primarily for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
