package resolve

import (
	"github.com/matzehuels/pypin/pkg/dates"
)

// Query identifies one resolution: a normalized package name and a target day.
type Query struct {
	Package string
	Date    dates.Date
}

type entry struct {
	result Result
	err    error
}

// ResultCache memoizes resolutions for the lifetime of a run.
// Entries are never evicted. The zero value is not usable; call NewResultCache.
type ResultCache struct {
	entries map[Query]entry
	hits    int
	misses  int
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[Query]entry)}
}

// Get returns the cached outcome for q. ok is false on a miss.
func (c *ResultCache) Get(q Query) (res Result, err error, ok bool) {
	e, ok := c.entries[q]
	if !ok {
		c.misses++
		return Result{}, nil, false
	}
	c.hits++
	return e.result, e.err, true
}

// Put records the outcome for q, replacing any previous entry.
func (c *ResultCache) Put(q Query, res Result, err error) {
	c.entries[q] = entry{result: res, err: err}
}

// Len returns the number of cached queries.
func (c *ResultCache) Len() int { return len(c.entries) }

// Hits returns how many lookups were answered from the cache.
func (c *ResultCache) Hits() int { return c.hits }

// Misses returns how many lookups were not in the cache.
func (c *ResultCache) Misses() int { return c.misses }
