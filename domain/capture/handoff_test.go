package capture

import (
	"sync"
	"testing"
)

func TestHandoff_LatestWins(t *testing.T) {
	var discarded []int
	h := newHandoff(func(v int) { discarded = append(discarded, v) })
	for i := 1; i <= 5; i++ {
		h.put(i)
	}
	v, ok := h.take()
	if !ok || v != 5 {
		t.Fatalf("take = %d,%v want 5,true", v, ok)
	}
	if len(discarded) != 4 {
		t.Fatalf("discarded %v want 4 values", discarded)
	}
	if _, ok := h.take(); ok {
		t.Fatalf("second take should be empty")
	}
}

func TestHandoff_PutReportsDisplacement(t *testing.T) {
	h := newHandoff[int](nil)
	if h.put(1) {
		t.Fatalf("first put reported a displaced value")
	}
	if !h.put(2) {
		t.Fatalf("second put did not report a displaced value")
	}
}

func TestHandoff_Drain(t *testing.T) {
	var discarded int
	h := newHandoff(func(int) { discarded++ })
	h.drain()
	if discarded != 0 {
		t.Fatalf("drain of empty cell discarded %d", discarded)
	}
	h.put(7)
	h.drain()
	if discarded != 1 {
		t.Fatalf("drain discarded %d want 1", discarded)
	}
	if _, ok := h.take(); ok {
		t.Fatalf("cell not empty after drain")
	}
}

// Every value put is either taken or discarded exactly once, whatever the
// interleaving of producer and consumer.
func TestHandoff_ConcurrentOwnership(t *testing.T) {
	const n = 10000
	var mu sync.Mutex
	seen := make(map[int]int, n)
	mark := func(v int) {
		mu.Lock()
		seen[v]++
		mu.Unlock()
	}
	h := newHandoff(mark)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			h.put(i)
		}
	}()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if v, ok := h.take(); ok {
				mark(v)
			}
			mu.Lock()
			complete := len(seen) == n
			mu.Unlock()
			if complete {
				return
			}
		}
	}()
	wg.Wait()
	h.drain()
	<-done

	if len(seen) != n {
		t.Fatalf("saw %d distinct values want %d", len(seen), n)
	}
	for v, c := range seen {
		if c != 1 {
			t.Fatalf("value %d handled %d times", v, c)
		}
	}
}
