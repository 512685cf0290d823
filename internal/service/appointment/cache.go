package appointment

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// readCache keeps list/summary reads fresh for a short window and
// coalesces identical in-flight fetches. Mutations invalidate affected
// keys; entries are never patched in place. Performance discipline
// only — server truth always wins on the next fetch.
type readCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	group   singleflight.Group

	now func() time.Time // test hook
}

type cacheEntry struct {
	value   any
	date    string // the date filter this entry depends on; "" = server-default "today"
	expires time.Time
}

func newReadCache(ttl time.Duration) *readCache {
	return &readCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// getOrFetch returns the cached value for key when fresh, otherwise
// runs fetch (once per key across concurrent callers) and caches it.
func (c *readCache) getOrFetch(key, date string, fetch func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fetch()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{value: value, date: date, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return value, nil
	})
	return v, err
}

// invalidateDate drops every entry depending on the given date. Entries
// with no date filter default to "today" server-side, so they are
// dropped as well rather than guessing the server's clock.
func (c *readCache) invalidateDate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.date == date || e.date == "" || date == "" {
			delete(c.entries, k)
		}
	}
}

// flush drops everything; used when the affected date is unknowable.
func (c *readCache) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
