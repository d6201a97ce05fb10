package cache

// ScopedKeyer wraps a Keyer with a prefix. Results computed with a custom
// symbol size table are scoped by the table's hash so they never collide
// with results from the default table:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "sizes:"+tableHash[:12]+":")
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

// ParseKey generates a prefixed parse key.
func (k *ScopedKeyer) ParseKey(cropsHash string, opts ParseKeyOpts) string {
	return k.prefix + k.inner.ParseKey(cropsHash, opts)
}

// RecognizeKey generates a prefixed recognition key.
func (k *ScopedKeyer) RecognizeKey(imageHash string, opts RecognizeKeyOpts) string {
	return k.prefix + k.inner.RecognizeKey(imageHash, opts)
}
