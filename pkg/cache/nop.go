package cache

import "context"

// NopCache discards every artifact and always misses. It backs
// --no-cache runs and the fallback when no cache directory can be
// resolved, so render paths never branch on caching being enabled.
type NopCache struct{}

// NewNopCache creates a no-op cache.
func NewNopCache() Cache {
	return NopCache{}
}

// Get always misses.
func (NopCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Put discards the artifact.
func (NopCache) Put(ctx context.Context, key string, data []byte) error {
	return nil
}

// Delete does nothing.
func (NopCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (NopCache) Close() error {
	return nil
}

var _ Cache = NopCache{}
