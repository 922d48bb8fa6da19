package urlcache

import (
	"sync"
	"time"
)

type entry struct {
	url      string
	deadline time.Time
}

// Cache maps storage paths to previously issued signed URLs. Entries expire
// together with the URL they hold, so a hit is always still valid. A hit
// never performs I/O.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry

	now func() time.Time
}

// New builds a cache whose entries live for ttl. A non-positive ttl keeps
// entries forever.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

// Get returns the cached URL for path, if present and not expired. Expired
// entries are dropped and read as misses.
func (c *Cache) Get(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[path]
	if !ok {
		return "", false
	}
	if !e.deadline.IsZero() && c.now().After(e.deadline) {
		delete(c.m, path)
		return "", false
	}
	return e.url, true
}

// Put stores the URL for path, replacing any previous entry.
func (c *Cache) Put(path, url string) {
	var deadline time.Time
	if c.ttl > 0 {
		deadline = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.m[path] = entry{url: url, deadline: deadline}
	c.mu.Unlock()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
