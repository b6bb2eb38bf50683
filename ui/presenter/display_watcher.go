package presenter

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/soocke/pixel-stream-go/domain/display"
)

// DisplayWatcher re-enumerates displays on an interval and fires OnChange
// when the set of displays or their geometry differs from the last poll.
// Display handles go stale on hot-plug, so the owner reopens capture from
// the callback.
type DisplayWatcher struct {
	Enumerate func() ([]display.Display, error)
	OnChange  func([]display.Display)
	Logger    *slog.Logger
	interval  time.Duration

	mu      sync.Mutex
	done    chan struct{}
	stopped chan struct{}
	last    []display.Display
	primed  bool
}

// NewDisplayWatcher constructs a watcher polling every interval (1s when
// <= 0). enumerate defaults to display.All.
func NewDisplayWatcher(enumerate func() ([]display.Display, error), onChange func([]display.Display), logger *slog.Logger, interval time.Duration) *DisplayWatcher {
	if enumerate == nil {
		enumerate = display.All
	}
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DisplayWatcher{Enumerate: enumerate, OnChange: onChange, Logger: logger, interval: interval}
}

// Start takes an initial snapshot and begins polling. Idempotent.
func (w *DisplayWatcher) Start() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return
	}
	w.done = make(chan struct{})
	w.stopped = make(chan struct{})
	w.primed = false
	go w.loop(w.done, w.stopped)
}

// Stop ends polling and waits for the loop to exit. Idempotent.
func (w *DisplayWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == nil {
		return
	}
	close(w.done)
	<-w.stopped
	w.done, w.stopped = nil, nil
}

func (w *DisplayWatcher) loop(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.poll()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-done:
			return
		}
	}
}

func (w *DisplayWatcher) poll() {
	current, err := w.Enumerate()
	if err != nil {
		w.Logger.Error("display enumeration", "error", err)
		return
	}
	if !w.primed {
		w.last, w.primed = current, true
		return
	}
	if slices.Equal(w.last, current) {
		return
	}
	w.Logger.Info("display.changed", "before", len(w.last), "after", len(current))
	w.last = current
	if w.OnChange != nil {
		w.OnChange(current)
	}
}
