package capture

import (
	"log/slog"
	"sync/atomic"
)

// surface is an OS-owned, reference-counted, lockable frame buffer on which
// the stream holds one retain from the moment it is delivered.
type surface interface {
	// lock increments the use count and takes a read-only lock, returning
	// a view over the mapped memory. On error neither is held.
	lock() (surfaceView, error)
	// unlock drops the read lock and the use count taken by lock.
	unlock()
	// release drops the stream's retain.
	release()
}

type surfaceView struct {
	pix                   []byte
	width, height, stride int
}

// streamCore bridges a push callback running on an OS-managed thread to the
// non-blocking Frame poll. It keeps at most one undelivered surface.
type streamCore struct {
	latest    *handoff[surface]
	format    PixelFormat
	logger    *slog.Logger
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

func newStreamCore(format PixelFormat, logger *slog.Logger) *streamCore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &streamCore{
		latest: newHandoff(func(s surface) { s.release() }),
		format: format,
		logger: logger,
	}
}

// deliver is called from the producer thread with a retained surface. It
// must never block.
func (c *streamCore) deliver(s surface) {
	c.delivered.Add(1)
	if c.latest.put(s) {
		c.dropped.Add(1)
	}
}

// frame takes the pending surface and wraps it as a Ready buffer. Releasing
// the buffer unlocks, drops the use count and drops the retain, in that
// order.
func (c *streamCore) frame() Frame {
	s, ok := c.latest.take()
	if !ok {
		return Blocking()
	}
	v, err := s.lock()
	if err != nil {
		s.release()
		c.logger.Debug("capture.surface_lock", "error", err)
		return Blocking()
	}
	buf := newBorrowedBuffer(v.pix, v.width, v.height, v.stride, c.format, func() {
		s.unlock()
		s.release()
	})
	return readyFrame(buf)
}

// drain releases a surface that arrived but was never polled.
func (c *streamCore) drain() { c.latest.drain() }
