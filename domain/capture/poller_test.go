package capture

import (
	"sync/atomic"
	"testing"
	"time"
)

// scriptedCapture alternates Ready and Blocking. Ready buffers are 2x2 BGRX
// with B=1 G=2 R=3 and count their releases.
type scriptedCapture struct {
	calls    atomic.Uint64
	handed   atomic.Uint64
	released atomic.Uint64
	active   atomic.Int32
	overlap  atomic.Bool
	never    bool
}

func (c *scriptedCapture) Frame() Frame {
	if c.active.Add(1) > 1 {
		c.overlap.Store(true)
	}
	defer c.active.Add(-1)
	n := c.calls.Add(1)
	if c.never || n%2 == 0 {
		return Blocking()
	}
	pix := make([]byte, 16)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2] = 1, 2, 3
	}
	c.handed.Add(1)
	return readyFrame(newBorrowedBuffer(pix, 2, 2, 8, FormatBGRX, func() { c.released.Add(1) }))
}

func (c *scriptedCapture) Close() {}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPoller_PublishesConvertedFrame(t *testing.T) {
	c := &scriptedCapture{}
	p := NewPoller(c, time.Millisecond, nil)
	p.Start()
	waitFor(t, "two ready frames", func() bool { return p.Stats().Ready >= 2 })
	p.Stop()

	snap := p.LatestFrame()
	if snap.Image == nil || snap.Sequence < 2 {
		t.Fatalf("snapshot missing: seq=%d", snap.Sequence)
	}
	if got := snap.Image.Pix[:4]; got[0] != 3 || got[1] != 2 || got[2] != 1 || got[3] != 0xFF {
		t.Fatalf("pixel = %v want [3 2 1 255]", got)
	}
	if snap.Format != FormatBGRX {
		t.Fatalf("format = %v", snap.Format)
	}
	if c.handed.Load() != c.released.Load() {
		t.Fatalf("handed %d buffers, released %d", c.handed.Load(), c.released.Load())
	}
	st := p.Stats()
	if st.Polls != st.Ready+st.Skipped {
		t.Fatalf("polls=%d ready=%d skipped=%d", st.Polls, st.Ready, st.Skipped)
	}
	if st.Bytes != st.Ready*16 {
		t.Fatalf("bytes = %d want %d", st.Bytes, st.Ready*16)
	}
}

func TestPoller_BlockingCountsSkips(t *testing.T) {
	c := &scriptedCapture{never: true}
	p := NewPoller(c, time.Millisecond, nil)
	p.Start()
	waitFor(t, "polls", func() bool { return p.Stats().Polls >= 5 })
	p.Stop()

	st := p.Stats()
	if st.Ready != 0 || st.Skipped != st.Polls {
		t.Fatalf("ready=%d skipped=%d polls=%d", st.Ready, st.Skipped, st.Polls)
	}
	if snap := p.LatestFrame(); snap.Image != nil || !snap.CapturedAt.IsZero() {
		t.Fatalf("blocking-only capture produced a snapshot")
	}
}

func TestPoller_StartStopIdempotent(t *testing.T) {
	c := &scriptedCapture{}
	p := NewPoller(c, time.Millisecond, nil)
	p.Stop()
	if p.Running() {
		t.Fatalf("running before start")
	}

	p.Start()
	p.Start()
	if !p.Running() {
		t.Fatalf("not running after start")
	}
	waitFor(t, "polls", func() bool { return c.calls.Load() >= 10 })
	p.Stop()
	p.Stop()
	if p.Running() {
		t.Fatalf("running after stop")
	}
	if c.overlap.Load() {
		t.Fatalf("Frame was called concurrently")
	}

	calls := c.calls.Load()
	time.Sleep(10 * time.Millisecond)
	if c.calls.Load() != calls {
		t.Fatalf("capture polled after Stop returned")
	}

	p.Start()
	waitFor(t, "polls after restart", func() bool { return c.calls.Load() > calls })
	p.Stop()
}

// steadyCapture returns a Ready 64x64 RGBA buffer on every poll.
type steadyCapture struct{ n byte }

func (c *steadyCapture) Frame() Frame {
	c.n++
	pix := make([]byte, 64*64*4)
	for i := range pix {
		pix[i] = c.n
	}
	return readyFrame(newOwnedBuffer(pix, 64, 64, 64*4, FormatRGBA))
}

func (c *steadyCapture) Close() {}

func TestPoller_RecyclesDisplacedImages(t *testing.T) {
	p := NewPoller(&steadyCapture{}, time.Millisecond, nil)

	var backing []*uint8
	for i := 0; i < 50; i++ {
		p.pollOnce()
		p.WithLatest(func(snap FrameSnapshot) {
			backing = append(backing, &snap.Image.Pix[0])
		})
	}
	if len(backing) != 50 {
		t.Fatalf("published %d snapshots want 50", len(backing))
	}
	for i := 2; i < len(backing); i++ {
		if backing[i] == backing[i-1] {
			t.Fatalf("frame %d converted into the image still published", i)
		}
		if backing[i] != backing[i-2] {
			t.Fatalf("frame %d did not reuse the image displaced before it", i)
		}
	}
}

func TestPoller_LatestFrameIsOwnedCopy(t *testing.T) {
	p := NewPoller(&steadyCapture{}, time.Millisecond, nil)
	p.pollOnce()
	snap := p.LatestFrame()
	first := snap.Image.Pix[0]

	for i := 0; i < 4; i++ {
		p.pollOnce()
	}
	if snap.Image.Pix[0] != first {
		t.Fatalf("copied snapshot changed from %d to %d", first, snap.Image.Pix[0])
	}
	p.WithLatest(func(latest FrameSnapshot) {
		if latest.Sequence != 5 || latest.Image.Pix[0] != 5 {
			t.Fatalf("latest seq=%d pix=%d want 5,5", latest.Sequence, latest.Image.Pix[0])
		}
	})
}
