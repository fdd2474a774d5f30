package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want value", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// An already-expired TTL must read as a miss.
	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry reported as hit")
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry reported as miss")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache stored data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("alpha"))
	h2 := Hash([]byte("alpha"))
	if h1 != h2 {
		t.Error("Hash is not deterministic")
	}
	if h3 := Hash([]byte("beta")); h1 == h3 {
		t.Error("different inputs hash equal")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	r1 := k.ResolveKey("doc1", "cat1")
	r2 := k.ResolveKey("doc1", "cat2")
	if r1 == r2 {
		t.Error("different catalogs produce equal resolve keys")
	}
	if r1 != k.ResolveKey("doc1", "cat1") {
		t.Error("resolve key is not deterministic")
	}

	d1 := k.DeckKey("doc1", DeckKeyOpts{CatalogHash: "cat1", Theme: "default", CanvasWidth: 960, CanvasHeight: 540})
	d2 := k.DeckKey("doc1", DeckKeyOpts{CatalogHash: "cat1", Theme: "dark", CanvasWidth: 960, CanvasHeight: 540})
	if d1 == d2 {
		t.Error("different themes produce equal deck keys")
	}
	d3 := k.DeckKey("doc1", DeckKeyOpts{CatalogHash: "cat1", Theme: "default", CanvasWidth: 1280, CanvasHeight: 720})
	if d1 == d3 {
		t.Error("different canvases produce equal deck keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:42:")

	key := scoped.ResolveKey("doc1", "cat1")
	if key[:10] != "tenant:42:" {
		t.Errorf("resolve key not prefixed: %s", key)
	}
	if scoped.DeckKey("doc1", DeckKeyOpts{})[:10] != "tenant:42:" {
		t.Error("deck key not prefixed")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	want := "p:" + NewDefaultKeyer().ResolveKey("a", "b")
	if got := scoped.ResolveKey("a", "b"); got != want {
		t.Errorf("ResolveKey with nil inner = %q, want %q", got, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}

	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("wrapped error not retryable")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message changed: %s", err.Error())
	}
	if IsRetryable(ErrCacheMiss) {
		t.Error("unwrapped error reported retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil {
		t.Errorf("immediate success: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrCacheMiss })
	if err != ErrCacheMiss {
		t.Errorf("non-retryable error = %v, want ErrCacheMiss", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable retried: %d calls", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("retryable success: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
