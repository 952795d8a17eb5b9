package tuteliq

import (
	"net/url"
	"sync"
	"time"
)

// cacheEntry is one cached GET response body.
type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// responseCache is a time-bounded cache for GET responses. Entries are
// evicted lazily: a read treats expired entries as absent and removes them;
// there is no background sweeper. Writes happen only after a fully successful
// 2xx response.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newResponseCache() *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.body, true
}

func (c *responseCache) set(key string, body []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		body:      body,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *responseCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey derives the cache key for a GET request. url.Values.Encode sorts
// by key, so two requests with the same parameters in different order share
// an entry.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
