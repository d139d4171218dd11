package cache

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey returns the key for a diagram rendered from source in the
	// given output format.
	RenderKey(format string, source []byte) string
}

// DefaultKeyer produces keys of the form "render:<format>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey hashes source so that keys have a fixed length.
func (DefaultKeyer) RenderKey(format string, source []byte) string {
	return "render:" + format + ":" + Hash(source)
}
