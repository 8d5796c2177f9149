package client

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Cache holds list responses keyed by entity plus normalized query string.
// Each entity carries a generation counter; Invalidate bumps it, and a store
// started under an older generation is discarded instead of written. A
// response that was already in flight when the invalidation happened can
// therefore never resurrect stale data.
type Cache struct {
	mu      sync.Mutex
	gens    map[string]uint64
	entries map[string]cacheEntry
}

type cacheEntry struct {
	gen   uint64
	value any
}

func NewCache() *Cache {
	return &Cache{
		gens:    make(map[string]uint64),
		entries: make(map[string]cacheEntry),
	}
}

// Generation snapshots the entity's current generation. Callers take it
// before fetching and hand it back to Put.
func (c *Cache) Generation(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[entity]
}

// Get returns the cached value for (entity, query) if it belongs to the
// current generation.
func (c *Cache) Get(entity, query string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey(entity, query)]
	if !ok || e.gen != c.gens[entity] {
		return nil, false
	}
	return e.value, true
}

// Put stores a value fetched under gen. Stale generations are dropped.
func (c *Cache) Put(entity, query string, gen uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gens[entity] {
		return
	}
	c.entries[cacheKey(entity, query)] = cacheEntry{gen: gen, value: value}
}

// Invalidate advances the entity's generation, orphaning every entry stored
// under the old one.
func (c *Cache) Invalidate(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[entity]++
	prefix := entity + "?"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func cacheKey(entity, query string) string {
	return entity + "?" + normalizeQuery(query)
}

// normalizeQuery sorts parameters so "page=2&q=x" and "q=x&page=2" share an
// entry.
func normalizeQuery(query string) string {
	vals, err := url.ParseQuery(query)
	if err != nil {
		return query
	}
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		sorted := append([]string(nil), vals[k]...)
		sort.Strings(sorted)
		for _, v := range sorted {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
