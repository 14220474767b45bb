package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestPutUpdatesExistingEntryWithoutGrowing(t *testing.T) {
	c := NewLRUCache[string, int](2)
	c.Put("alpha", 1)
	c.Put("beta", 2)
	c.Put("alpha", 10)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	if v, ok := c.Get("alpha"); !ok || v != 10 {
		t.Fatalf("expected updated alpha=10, got %d (hit=%v)", v, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string, int](2)
	c.Put("alpha", 1)
	c.Put("beta", 2)

	// Touch alpha so beta becomes the eviction candidate.
	if _, ok := c.Get("alpha"); !ok {
		t.Fatal("expected alpha to be cached")
	}
	c.Put("gamma", 3)

	if _, ok := c.Get("beta"); ok {
		t.Fatal("expected beta to be evicted")
	}
	if _, ok := c.Get("alpha"); !ok {
		t.Fatal("expected alpha to survive eviction")
	}
	if _, ok := c.Get("gamma"); !ok {
		t.Fatal("expected gamma to be cached")
	}
}

func TestZeroSizeHoldsOneEntry(t *testing.T) {
	c := NewLRUCache[int, string](0)
	c.Put(1, "one")
	c.Put(2, "two")

	if c.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", c.Len())
	}
	if _, ok := c.Get(2); !ok {
		t.Fatal("expected most recent entry to remain")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewLRUCache[string, int](16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n+j)%32)
				c.Put(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Fatalf("cache grew past its size: %d", c.Len())
	}
}
