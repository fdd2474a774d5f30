package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple tenants or projects can
// share one cache backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated key.
// A nil inner keyer defaults to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResolveKey generates a prefixed resolution key.
func (k *ScopedKeyer) ResolveKey(docHash, catalogHash string) string {
	return k.prefix + k.inner.ResolveKey(docHash, catalogHash)
}

// DeckKey generates a prefixed deck key.
func (k *ScopedKeyer) DeckKey(docHash string, opts DeckKeyOpts) string {
	return k.prefix + k.inner.DeckKey(docHash, opts)
}
