package core

// listing_cache.go keeps rendered listing pages in memory.
//
// The cache is never authoritative: a miss always falls through to the store.
// Every successful mutation drops all pages of the mutated entity and of the
// listings that join it. When the entry limit is reached the oldest entry is
// evicted first.

import (
	"strconv"
	"sync"
)

// DefaultListingCacheSize is the entry limit used when none is configured.
const DefaultListingCacheSize = 256

type cacheKey struct {
	entity string
	page   string // query|page
}

// ListingCache stores rendered listing pages keyed by entity, query and page.
// Safe for concurrent use. A nil *ListingCache is a valid cache that never hits.
type ListingCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]map[string][]byte
	order   []cacheKey
	gens    map[string]uint64 // bumped by Invalidate
}

// NewListingCache creates a cache holding at most maxEntries pages.
func NewListingCache(maxEntries int) *ListingCache {
	if maxEntries <= 0 {
		maxEntries = DefaultListingCacheSize
	}
	return &ListingCache{
		max:     maxEntries,
		entries: make(map[string]map[string][]byte),
		gens:    make(map[string]uint64),
	}
}

func pageKey(query string, page int) string {
	return query + "|" + strconv.Itoa(page)
}

// Get returns the cached page, if present.
func (c *ListingCache) Get(entity, query string, page int) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	body, ok := c.entries[entity][pageKey(query, page)]
	return body, ok
}

// Generation returns a counter that changes whenever entity is invalidated.
func (c *ListingCache) Generation(entity string) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[entity]
}

// PutIfCurrent stores a page rendered from data read at generation gen.
// The page is dropped when entity was invalidated in the meantime.
func (c *ListingCache) PutIfCurrent(entity, query string, page int, gen uint64, body []byte) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[entity] != gen {
		return false
	}
	c.put(entity, query, page, body)
	return true
}

// put stores a page, evicting the oldest entry when full. c.mu must be held.
func (c *ListingCache) put(entity, query string, page int, body []byte) {
	key := pageKey(query, page)
	pages, ok := c.entries[entity]
	if !ok {
		pages = make(map[string][]byte)
		c.entries[entity] = pages
	}
	if _, exists := pages[key]; exists {
		pages[key] = body
		return
	}

	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries[oldest.entity], oldest.page)
	}

	pages[key] = body
	c.order = append(c.order, cacheKey{entity: entity, page: key})
}

// Invalidate drops every cached page of an entity.
func (c *ListingCache) Invalidate(entity string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[entity]++
	if _, ok := c.entries[entity]; !ok {
		return
	}
	delete(c.entries, entity)

	kept := c.order[:0]
	for _, k := range c.order {
		if k.entity != entity {
			kept = append(kept, k)
		}
	}
	c.order = kept
}

// Len returns the number of cached pages.
func (c *ListingCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
