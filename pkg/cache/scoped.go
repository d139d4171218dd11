package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several tools share one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "foldout:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for a rendered diagram.
func (k *ScopedKeyer) RenderKey(format string, source []byte) string {
	return k.prefix + k.inner.RenderKey(format, source)
}
