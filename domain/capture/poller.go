package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	captureStatsLogInterval = 5 * time.Second
	defaultPollInterval     = time.Millisecond
)

// Poller drives a Capture from its own goroutine and keeps an RGBA copy of
// the newest Ready frame. Every buffer is released right after conversion,
// so the backend never waits on a slow consumer.
//
// Published images are recycled: once a newer snapshot replaces one, its
// image becomes the target of a later conversion. Readers therefore look at
// the image inside WithLatest, which holds off the replacement until they
// return.
type Poller struct {
	capture  Capture
	interval atomic.Int64 // nanoseconds
	logger   *slog.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running atomic.Bool

	frameMu      sync.RWMutex // held by readers of latest.Image
	latest       atomic.Pointer[FrameSnapshot]
	spare        *image.RGBA // retired image, owned by the poll goroutine
	polls        atomic.Uint64
	ready        atomic.Uint64
	skipped      atomic.Uint64
	bytes        atomic.Uint64
	convertNanos atomic.Uint64
	sequence     atomic.Uint64
}

var _ Service = (*Poller)(nil)

// NewPoller returns a stopped poller over c. interval is the pause between
// polls; values <= 0 fall back to 1ms. The poller does not own c and never
// closes it.
func NewPoller(c Capture, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Poller{capture: c, logger: logger}
	p.SetInterval(interval)
	return p
}

// SetInterval changes the pause between polls, taking effect after the
// current pause.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		d = defaultPollInterval
	}
	p.interval.Store(int64(d))
}

func (p *Poller) Running() bool { return p.running.Load() }

// WithLatest calls fn with the newest snapshot and reports whether there
// was one. snap.Image is valid only until fn returns and must not be kept.
func (p *Poller) WithLatest(fn func(snap FrameSnapshot)) bool {
	p.frameMu.RLock()
	defer p.frameMu.RUnlock()
	snap := p.latest.Load()
	if snap == nil {
		return false
	}
	fn(*snap)
	return true
}

// LatestFrame returns a copy of the newest snapshot that the caller owns, or
// the zero value before the first Ready frame.
func (p *Poller) LatestFrame() FrameSnapshot {
	var out FrameSnapshot
	p.WithLatest(func(snap FrameSnapshot) {
		out = snap
		out.Image = cloneRGBA(snap.Image)
	})
	return out
}

func (p *Poller) Stats() CaptureStats {
	ready := p.ready.Load()
	total := p.convertNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if ready > 0 && total > 0 {
		avg = time.Duration(total / ready)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var snapshot FrameSnapshot
	if latest := p.latest.Load(); latest != nil {
		snapshot = *latest
	}
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Polls:            p.polls.Load(),
		Ready:            ready,
		Skipped:          p.skipped.Load(),
		Bytes:            p.bytes.Load(),
		AvgConvert:       avg,
		AvgConvertMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

// Start launches the poll loop. It is a no-op while running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running.Load() {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.running.Store(true)
	go p.loop(p.stop, p.done)
}

// Stop ends the poll loop and waits for it to exit, so the capture is no
// longer polled once Stop returns. Stopping twice is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return
	}
	close(p.stop)
	<-p.done
	p.running.Store(false)
}

func (p *Poller) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	pause := time.NewTimer(time.Duration(p.interval.Load()))
	defer pause.Stop()

	for {
		p.pollOnce()

		select {
		case <-logTicker.C:
			p.logStats()
		default:
		}

		pause.Reset(time.Duration(p.interval.Load()))
		select {
		case <-stop:
			return
		case <-pause.C:
		}
	}
}

// pollOnce performs one Frame call and, on Ready, converts and publishes.
func (p *Poller) pollOnce() {
	p.polls.Add(1)
	frame := p.capture.Frame()
	if !frame.Ready() {
		p.skipped.Add(1)
		return
	}
	buf := frame.Buffer
	defer buf.Release()

	start := time.Now()
	img := p.target(buf.Width, buf.Height)
	if err := ConvertToRGBA(img, buf); err != nil {
		p.retire(img)
		p.skipped.Add(1)
		p.logger.Error("capture.convert", "format", buf.Format.String(), "error", err)
		return
	}
	p.convertNanos.Add(uint64(time.Since(start).Nanoseconds()))
	p.ready.Add(1)
	p.bytes.Add(uint64(len(buf.Pix)))
	seq := p.sequence.Add(1)
	p.publish(&FrameSnapshot{Image: img, Format: buf.Format, CapturedAt: time.Now(), Sequence: seq})
}

// target returns the conversion destination, preferring the retired image.
func (p *Poller) target(w, h int) *image.RGBA {
	if spare := p.spare; spare != nil {
		p.spare = nil
		if img := fitFrame(spare, w, h); img != nil {
			return img
		}
		RecycleFrame(spare)
	}
	return acquireFrame(w, h)
}

// publish swaps snap in and retires the image it replaces once no reader
// holds it.
func (p *Poller) publish(snap *FrameSnapshot) {
	p.frameMu.Lock()
	prev := p.latest.Swap(snap)
	p.frameMu.Unlock()
	if prev != nil {
		p.retire(prev.Image)
	}
}

func (p *Poller) retire(img *image.RGBA) {
	if p.spare == nil {
		p.spare = img
		return
	}
	RecycleFrame(img)
}

func (p *Poller) logStats() {
	stats := p.Stats()
	p.logger.Debug("capture.stats",
		"polls", stats.Polls,
		"ready", stats.Ready,
		"skipped", stats.Skipped,
		"bytes", stats.Bytes,
		"avg_convert", stats.AvgConvert,
		"age", stats.LatestFrameAge,
		"outstanding", OutstandingBuffers(),
	)
}
