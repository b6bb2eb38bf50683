package capture

import (
	"sync"
)

// Switchable is a Capture whose backend can be replaced while a Poller is
// driving it, e.g. after a display hot-plug or a config change. Frame and
// Swap serialise on one lock, so a backend is never polled and closed at
// the same time. With no backend installed Frame reports Blocking.
type Switchable struct {
	mu      sync.Mutex
	current Capture
}

func NewSwitchable(c Capture) *Switchable { return &Switchable{current: c} }

func (s *Switchable) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Blocking()
	}
	return s.current.Frame()
}

// Swap installs next (which may be nil) and closes the previous backend.
// Buffers already handed out by the previous backend follow its rules.
func (s *Switchable) Swap(next Capture) {
	s.mu.Lock()
	prev := s.current
	s.current = next
	if prev != nil {
		prev.Close()
	}
	s.mu.Unlock()
}

// Installed reports whether a backend is present.
func (s *Switchable) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Close closes the current backend and leaves the Switchable empty.
func (s *Switchable) Close() { s.Swap(nil) }
