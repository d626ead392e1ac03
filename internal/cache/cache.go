// Package cache holds extraction results keyed by source digest, so
// repeated scans of unchanged files skip the parse entirely.
package cache

import (
	"fmt"

	"github.com/maypok86/otter"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

// Entry is one cached extraction result.
type Entry struct {
	Module     *extract.Module
	References []extract.Reference
}

// ResultCache is a bounded in-memory cache of extraction results. The
// key is the hex digest of the source text, so a hit is always valid
// regardless of which path the content was read from.
type ResultCache struct {
	inner otter.Cache[string, Entry]
}

// New builds a cache bounded to capacity entries.
func New(capacity int) (*ResultCache, error) {
	builder, err := otter.NewBuilder[string, Entry](capacity)
	if err != nil {
		return nil, fmt.Errorf("invalid result cache capacity %d: %w", capacity, err)
	}
	inner, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}
	return &ResultCache{inner: inner}, nil
}

// Get returns the cached entry for a digest, if present.
func (c *ResultCache) Get(digest string) (Entry, bool) {
	return c.inner.Get(digest)
}

// Put stores an extraction result under its digest.
func (c *ResultCache) Put(digest string, e Entry) {
	c.inner.Set(digest, e)
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	return c.inner.Size()
}

// Close releases the cache's background resources.
func (c *ResultCache) Close() {
	c.inner.Close()
}
