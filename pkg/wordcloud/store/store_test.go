package store

import (
	"sync"
	"testing"
)

func TestIDSourceConcurrentUniqueness(t *testing.T) {
	src := NewIDSource()

	const goroutines = 8
	const perGoroutine = 200

	ids := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- src.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, goroutines*perGoroutine)
	for id := range ids {
		if len(id) != 26 {
			t.Fatalf("malformed ULID %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID %q minted under concurrency", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("minted %d unique IDs, want %d", len(seen), goroutines*perGoroutine)
	}
}
