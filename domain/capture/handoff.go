package capture

import "sync/atomic"

// handoff is a single-slot, latest-wins cell between one producer and one
// consumer. Both sides move values with an atomic swap, so each value is
// owned by exactly one party at a time: a put that displaces an unread
// value hands that value to discard, a take empties the slot. Nothing is
// ever queued and the producer never waits.
type handoff[T any] struct {
	slot    atomic.Pointer[T]
	discard func(T)
}

func newHandoff[T any](discard func(T)) *handoff[T] {
	return &handoff[T]{discard: discard}
}

// put stores v and reports whether an unread value was discarded.
func (h *handoff[T]) put(v T) bool {
	prev := h.slot.Swap(&v)
	if prev == nil {
		return false
	}
	if h.discard != nil {
		h.discard(*prev)
	}
	return true
}

// take removes the pending value, if any.
func (h *handoff[T]) take() (T, bool) {
	p := h.slot.Swap(nil)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// drain discards the pending value, if any.
func (h *handoff[T]) drain() {
	if v, ok := h.take(); ok && h.discard != nil {
		h.discard(v)
	}
}
