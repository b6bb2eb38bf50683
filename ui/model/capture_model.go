package model

import (
	"sync"
	"sync/atomic"
)

// CaptureModel tracks whether polling is enabled and which source is shown.
// The zero value is disabled and usable. UI callbacks and presenter ticks
// may race, so state is guarded.
type CaptureModel struct {
	enabled atomic.Bool

	mu     sync.RWMutex
	source string
}

// Enabled reports whether capture is currently enabled.
func (m *CaptureModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *CaptureModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled.Store(b)
}

// Source describes the display and backend being captured.
func (m *CaptureModel) Source() string {
	if m == nil {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

func (m *CaptureModel) SetSource(s string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.source = s
	m.mu.Unlock()
}
