package capture

import (
	"time"

	"github.com/soocke/pixel-stream-go/domain/display"
)

const (
	defaultQueueDepth = 3
)

// Options is the immutable configuration handed to a backend. The With
// setters return a modified copy, so a value can be shared freely once
// built:
//
//	opts := capture.NewOptions(d).WithCursor(false).WithFrameRate(30)
type Options struct {
	display    display.Display
	cursor     bool
	frameRate  uint32
	queueDepth uint8
}

// NewOptions returns defaults for d: cursor shown, uncapped frame rate and a
// queue depth of 3.
func NewOptions(d display.Display) Options {
	return Options{display: d, cursor: true, queueDepth: defaultQueueDepth}
}

// WithCursor sets whether the pointer is composited into frames.
func (o Options) WithCursor(show bool) Options {
	o.cursor = show
	return o
}

// WithFrameRate sets the frame-rate ceiling in Hz. 0 means as fast as the
// platform delivers.
func (o Options) WithFrameRate(hz uint32) Options {
	o.frameRate = hz
	return o
}

// WithQueueDepth sets the native buffering depth. Only backends that queue
// (the streaming backend) use it.
func (o Options) WithQueueDepth(depth uint8) Options {
	o.queueDepth = depth
	return o
}

func (o Options) Display() display.Display { return o.display }
func (o Options) Cursor() bool             { return o.cursor }
func (o Options) FrameRate() uint32        { return o.frameRate }
func (o Options) QueueDepth() uint8        { return o.queueDepth }

// MinFrameInterval is the minimum time between delivered frames derived
// from the frame-rate ceiling, 0 when uncapped.
func (o Options) MinFrameInterval() time.Duration {
	if o.frameRate == 0 {
		return 0
	}
	return time.Second / time.Duration(o.frameRate)
}
