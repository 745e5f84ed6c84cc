package research

import (
	"strings"
	"sync"
)

// Cache stores computed research digests for the lifetime of a run, keyed by
// normalized company identity. An empty string is a valid cached value and
// means "research ran and found nothing"; absence means "not yet computed".
//
// Reads and writes are individually atomic. Concurrent misses for the same
// key may trigger duplicate fetches; the last write wins, which is harmless
// because the computation is deterministic for a given site snapshot.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewCache creates an empty digest cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Key builds the normalized cache key for a company identity.
func Key(companyName, companyWebsite string) string {
	return strings.ToLower(strings.TrimSpace(companyName) + "|" + strings.TrimSpace(companyWebsite))
}

// Get returns the cached digest and whether it was present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	digest, ok := c.entries[key]
	return digest, ok
}

// Set stores a digest (possibly empty) under key.
func (c *Cache) Set(key, digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = digest
}

// Len reports the number of cached companies.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
