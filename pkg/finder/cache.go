package finder

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

var _ Searcher = (*Cache)(nil)

// Cache keeps the most recently used results in front of a Searcher.
// Only successful searches are stored. Cached result sets are shared between callers.
type Cache struct {
	next    Searcher
	entries *lru.Cache[string, ResultSet]
	size    int
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache wraps next with an LRU of the given size. A size <= 0 disables caching
// and every request goes straight to next.
func NewCache(next Searcher, size int) (*Cache, error) {
	c := &Cache{next: next, size: size}
	if size <= 0 {
		return c, nil
	}
	entries, err := lru.New[string, ResultSet](size)
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

// Search implements Searcher.
func (c *Cache) Search(ctx context.Context, req SearchRequest) (ResultSet, error) {
	if c.entries == nil {
		return c.next.Search(ctx, req)
	}
	key := req.Key()
	if words, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		log.Debugf("Cache hit for %s", key)
		return words, nil
	}
	c.misses.Add(1)

	words, err := c.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if evicted := c.entries.Add(key, words); evicted {
		log.Debugf("Evicted oldest cached result to make room for %s", key)
	}
	return words, nil
}

// Stats returns cache counters.
func (c *Cache) Stats() map[string]int {
	entries := 0
	if c.entries != nil {
		entries = c.entries.Len()
	}
	return map[string]int{
		"cacheEntries": entries,
		"cacheSize":    c.size,
		"cacheHits":    int(c.hits.Load()),
		"cacheMisses":  int(c.misses.Load()),
	}
}

// Stats returns the cache counters of s, or nil when s does not keep any.
func Stats(s Searcher) map[string]int {
	if c, ok := s.(*Cache); ok {
		return c.Stats()
	}
	return nil
}
