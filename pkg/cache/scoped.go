package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend without colliding. The HTTP server scopes keys per API
// version:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// LayoutKey generates a prefixed placement key.
func (k *ScopedKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(diagramHash, opts)
}

// RouteKey generates a prefixed routing key.
func (k *ScopedKeyer) RouteKey(layoutHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(layoutHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(routesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(routesHash, opts)
}
