package core

import (
	"fmt"
	"sync"
	"testing"
)

// put stores a page rendered at the entity's current generation.
func put(c *ListingCache, entity, query string, page int, body []byte) {
	c.PutIfCurrent(entity, query, page, c.Generation(entity), body)
}

func TestListingCache_GetPut(t *testing.T) {
	c := NewListingCache(10)

	if _, ok := c.Get("categories", "", 1); ok {
		t.Fatal("empty cache should miss")
	}

	put(c, "categories", "", 1, []byte("page one"))
	body, ok := c.Get("categories", "", 1)
	if !ok || string(body) != "page one" {
		t.Fatalf("Get = %q, %v", body, ok)
	}

	if _, ok := c.Get("categories", "", 2); ok {
		t.Error("different page should miss")
	}
	if _, ok := c.Get("categories", "x", 1); ok {
		t.Error("different query should miss")
	}
	if _, ok := c.Get("products", "", 1); ok {
		t.Error("different entity should miss")
	}
}

func TestListingCache_InvalidateDropsOnlyEntity(t *testing.T) {
	c := NewListingCache(10)
	put(c, "categories", "", 1, []byte("a"))
	put(c, "categories", "shoe", 2, []byte("b"))
	put(c, "products", "", 1, []byte("c"))

	c.Invalidate("categories")

	if _, ok := c.Get("categories", "", 1); ok {
		t.Error("categories page 1 should be gone")
	}
	if _, ok := c.Get("categories", "shoe", 2); ok {
		t.Error("categories search page should be gone")
	}
	if _, ok := c.Get("products", "", 1); !ok {
		t.Error("products should be kept")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	c.Invalidate("unknown")
	if c.Len() != 1 {
		t.Errorf("invalidating an unknown entity changed Len to %d", c.Len())
	}
}

func TestListingCache_EvictsOldest(t *testing.T) {
	c := NewListingCache(2)
	put(c, "customers", "", 1, []byte("1"))
	put(c, "customers", "", 2, []byte("2"))
	put(c, "customers", "", 3, []byte("3"))

	if _, ok := c.Get("customers", "", 1); ok {
		t.Error("oldest entry should be evicted")
	}
	if _, ok := c.Get("customers", "", 3); !ok {
		t.Error("newest entry should be present")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestListingCache_OverwriteKeepsSize(t *testing.T) {
	c := NewListingCache(2)
	put(c, "customers", "", 1, []byte("old"))
	put(c, "customers", "", 1, []byte("new"))

	body, _ := c.Get("customers", "", 1)
	if string(body) != "new" {
		t.Errorf("body = %q, want new", body)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestListingCache_DefaultSize(t *testing.T) {
	c := NewListingCache(0)
	if c.max != DefaultListingCacheSize {
		t.Errorf("max = %d, want %d", c.max, DefaultListingCacheSize)
	}
}

func TestListingCache_Concurrent(t *testing.T) {
	c := NewListingCache(50)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for p := 1; p <= 10; p++ {
				put(c, "products", fmt.Sprint(i), p, []byte("x"))
				c.Get("products", fmt.Sprint(i), p)
				if p%5 == 0 {
					c.Invalidate("products")
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len = %d exceeds limit", c.Len())
	}
}

func TestListingCache_PutIfCurrent(t *testing.T) {
	c := NewListingCache(10)
	gen := c.Generation("invoices")

	c.Invalidate("invoices")
	if c.PutIfCurrent("invoices", "", 1, gen, []byte("stale")) {
		t.Fatal("page read before an invalidation should be dropped")
	}
	if _, ok := c.Get("invoices", "", 1); ok {
		t.Fatal("stale page was stored")
	}

	gen = c.Generation("invoices")
	if !c.PutIfCurrent("invoices", "", 1, gen, []byte("fresh")) {
		t.Fatal("current page should be stored")
	}
	if body, ok := c.Get("invoices", "", 1); !ok || string(body) != "fresh" {
		t.Errorf("Get = %q, %v", body, ok)
	}
}

func TestListingCache_NilIsUsable(t *testing.T) {
	var c *ListingCache
	c.Invalidate("customers")
	if _, ok := c.Get("customers", "", 1); ok {
		t.Error("nil cache should never hit")
	}
	if c.Len() != 0 || c.PutIfCurrent("customers", "", 1, c.Generation("customers"), nil) {
		t.Error("nil cache should stay empty")
	}
}
