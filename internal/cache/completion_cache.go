package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// CompletionCache memoizes the profile-completion flag per user so
// the completion guards do not hit the database on every request.
type CompletionCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewCompletionCache creates a completion cache with the given TTL.
func NewCompletionCache(ttl time.Duration) *CompletionCache {
	return &CompletionCache{
		cache: gocache.New(ttl, time.Minute),
		ttl:   ttl,
	}
}

// Get returns the cached flag and whether it was present.
func (c *CompletionCache) Get(userID string) (bool, bool) {
	data, found := c.cache.Get(userID)
	if !found {
		metrics.CacheMisses.WithLabelValues("completion").Inc()
		return false, false
	}
	metrics.CacheHits.WithLabelValues("completion").Inc()
	return data.(bool), true
}

// Set stores the flag for the user.
func (c *CompletionCache) Set(userID string, complete bool) {
	c.cache.Set(userID, complete, c.ttl)
}

// Invalidate drops the cached flag, forcing a database check.
func (c *CompletionCache) Invalidate(userID string) {
	c.cache.Delete(userID)
}
