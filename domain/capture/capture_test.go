package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/soocke/pixel-stream-go/domain/display"
)

// openLive opens the platform backend on the primary display, skipping on
// machines without a display or without capture permission.
func openLive(tb testing.TB) (Capture, display.Display) {
	tb.Helper()
	d, err := display.Primary()
	if err != nil {
		tb.Skipf("no primary display: %v", err)
	}
	c, err := Open(NewOptions(d).WithFrameRate(60), nil)
	if err != nil {
		if errors.Is(err, ErrInit) {
			tb.Skipf("backend unavailable: %v", err)
		}
		tb.Fatalf("open: %v", err)
	}
	return c, d
}

func TestCapture_LivePollLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("live capture")
	}
	base := OutstandingBuffers()
	c, d := openLive(t)
	w, h := int(d.Width()), int(d.Height())

	ready := 0
	var held *Buffer
	for i := 0; i < 1000; i++ {
		f := c.Frame()
		if !f.Ready() {
			time.Sleep(time.Millisecond)
			continue
		}
		ready++
		b := f.Buffer
		if b.Width != w || b.Height != h {
			t.Fatalf("poll %d: geometry %dx%d want %dx%d", i, b.Width, b.Height, w, h)
		}
		if b.Stride < w*4 || len(b.Pix) < (h-1)*b.Stride+w*4 {
			t.Fatalf("poll %d: stride=%d len=%d for %dx%d", i, b.Stride, len(b.Pix), w, h)
		}
		if n := len(b.Row(h - 1)); n != w*4 {
			t.Fatalf("poll %d: last row holds %d bytes want %d", i, n, w*4)
		}
		if held == nil && b.rel != nil {
			// borrowed buffers must survive Close
			held = b
			continue
		}
		b.Release()
	}

	c.Close()
	c.Close()
	if held != nil {
		_ = held.Pix[0]
		held.Release()
		held.Release()
	}
	if OutstandingBuffers() != base {
		t.Fatalf("outstanding = %d want %d", OutstandingBuffers(), base)
	}
	if ready == 0 {
		t.Fatal("no ready frame in 1000 polls")
	}
	t.Logf("ready frames: %d / 1000", ready)
}

func TestOpenBackend_Unsupported(t *testing.T) {
	opts := NewOptions(testDisplay())
	for _, b := range []Backend{BackendStream, BackendBlit, BackendScreenshot} {
		if b == platformBackend {
			continue
		}
		c, err := OpenBackend(b, opts, nil)
		if err == nil {
			// some platforms build more than one backend
			c.Close()
			continue
		}
		if !errors.Is(err, ErrUnsupportedBackend) && !errors.Is(err, ErrInit) {
			t.Fatalf("%v: unexpected error %v", b, err)
		}
	}
}

func TestOpen_EmptyDisplayFails(t *testing.T) {
	_, err := Open(NewOptions(display.Display{}), nil)
	if !errors.Is(err, ErrInit) {
		t.Fatalf("err = %v want ErrInit", err)
	}
}

func BenchmarkFrame(b *testing.B) {
	c, _ := openLive(b)
	defer c.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if f := c.Frame(); f.Ready() {
			f.Buffer.Release()
		}
	}
}
