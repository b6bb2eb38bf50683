package capture

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Capture is the polling contract shared by every backend. Frame never
// blocks waiting for content and never fails: it alternates between Ready
// and Blocking. Calls on one instance must not run concurrently. Close stops
// production and releases native resources exactly once; it is safe to call
// while a Ready buffer obtained from the same backend is still alive.
type Capture interface {
	Frame() Frame
	Close()
}

// Status tags a Frame.
type Status uint8

const (
	// StatusBlocking means no new pixel data since the previous poll. The
	// call itself did not block.
	StatusBlocking Status = iota
	// StatusReady means Frame.Buffer holds new pixel data.
	StatusReady
)

func (s Status) String() string {
	if s == StatusReady {
		return "ready"
	}
	return "blocking"
}

// Frame is the unit of delivery: either a Ready buffer or Blocking.
type Frame struct {
	Status Status
	Buffer *Buffer
}

// Ready reports whether the frame carries a buffer.
func (f Frame) Ready() bool { return f.Status == StatusReady && f.Buffer != nil }

// Blocking is the frame returned when nothing new is available.
func Blocking() Frame { return Frame{Status: StatusBlocking} }

func readyFrame(b *Buffer) Frame { return Frame{Status: StatusReady, Buffer: b} }

// Buffer is a read view over pixel memory. Pix is Stride*Height bytes; each
// row starts at a multiple of Stride and holds Width 4-byte pixels in Format
// order. Stride may exceed Width*4 when the OS pads rows; Row returns the
// pixels of one row without the padding.
//
// Streaming buffers borrow OS shared memory under a read lock; Release must
// be called once the consumer is done and Pix must not be touched after
// that. Copy-backend buffers alias the backend's bitmap and stay valid only
// until the next Frame call; Release is a no-op for them but still correct.
//
// Pix must not be used once the *Buffer itself is unreachable: a dropped
// streaming buffer is released by the runtime, which unlocks the memory Pix
// points into. Keep the *Buffer alive for as long as Pix is read.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat

	rel *releaser
}

// Row returns the Width*4 pixel bytes of row y.
func (b *Buffer) Row(y int) []byte {
	off := y * b.Stride
	return b.Pix[off : off+b.Width*4 : off+b.Width*4]
}

// Release hands the buffer back to its producer. Second and later calls do
// nothing.
func (b *Buffer) Release() {
	if b == nil || b.rel == nil {
		return
	}
	b.rel.run()
}

var outstanding atomic.Int64

// OutstandingBuffers reports how many native-backed buffers have been
// handed out and not yet released.
func OutstandingBuffers() int64 { return outstanding.Load() }

type releaser struct {
	once sync.Once
	fn   func()
}

func (r *releaser) run() {
	r.once.Do(func() {
		r.fn()
		outstanding.Add(-1)
	})
}

// newBorrowedBuffer wraps native memory whose lock must be dropped by fn.
// A buffer that becomes unreachable without Release is released by the
// runtime as a last resort.
func newBorrowedBuffer(pix []byte, width, height, stride int, format PixelFormat, fn func()) *Buffer {
	rel := &releaser{fn: fn}
	outstanding.Add(1)
	b := &Buffer{Pix: pix, Width: width, Height: height, Stride: stride, Format: format, rel: rel}
	runtime.AddCleanup(b, func(r *releaser) { r.run() }, rel)
	return b
}

// newOwnedBuffer wraps memory owned by the backend itself.
func newOwnedBuffer(pix []byte, width, height, stride int, format PixelFormat) *Buffer {
	return &Buffer{Pix: pix, Width: width, Height: height, Stride: stride, Format: format}
}
