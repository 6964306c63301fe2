package rex

import "sync"

type cacheKey struct {
	expr  string
	flags Flags
}

// Cache memoizes compiled patterns keyed by (pattern text, flags). Entries
// are immutable once inserted and live until Clear; growth is unbounded,
// which is the documented tradeoff of this design.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*Regexp
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*Regexp)}
}

// Get returns the compiled pattern for (expr, flags), compiling it on first
// use. Concurrent first use compiles at most once: the compile runs under
// the write lock after a re-check. A failed compile propagates to the caller
// and is never cached.
func (c *Cache) Get(expr string, flags Flags) (*Regexp, error) {
	key := cacheKey{expr: expr, flags: flags}

	c.mu.RLock()
	re, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.entries[key]; ok {
		return re, nil
	}
	re, err := CompileFlags(expr, flags)
	if err != nil {
		return nil, err
	}
	c.entries[key] = re
	return re, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear evicts every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*Regexp)
}

var defaultCache = NewCache()

// Cached compiles expr through the package-level cache.
func Cached(expr string, flags Flags) (*Regexp, error) {
	return defaultCache.Get(expr, flags)
}

// ClearCache evicts the package-level cache.
func ClearCache() {
	defaultCache.Clear()
}
