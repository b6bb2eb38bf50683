package model

import (
	"time"

	"github.com/soocke/pixel-stream-go/domain/capture"
)

// ThroughputModel turns cumulative poller counters into rates. It keeps the
// previous sample and derives frames and bytes per second over the interval
// between two OnSample calls. The zero value is ready to use.
type ThroughputModel struct {
	last     capture.CaptureStats
	lastAt   time.Time
	fps      float64
	bps      float64
	pollRate float64
}

// NewThroughputModel returns a pointer to a ready-to-use ThroughputModel.
func NewThroughputModel() *ThroughputModel { return &ThroughputModel{} }

// OnSample records stats taken at now. Counters that went backwards (a new
// poller) reset the baseline without producing a rate.
func (m *ThroughputModel) OnSample(stats capture.CaptureStats, now time.Time) {
	if m == nil {
		return
	}
	prev, prevAt := m.last, m.lastAt
	m.last, m.lastAt = stats, now
	if prevAt.IsZero() || stats.Ready < prev.Ready || stats.Bytes < prev.Bytes || stats.Polls < prev.Polls {
		m.fps, m.bps, m.pollRate = 0, 0, 0
		return
	}
	dt := now.Sub(prevAt).Seconds()
	if dt <= 0 {
		return
	}
	m.fps = float64(stats.Ready-prev.Ready) / dt
	m.bps = float64(stats.Bytes-prev.Bytes) / dt
	m.pollRate = float64(stats.Polls-prev.Polls) / dt
}

// Reset drops the baseline, for example when polling stops.
func (m *ThroughputModel) Reset() {
	if m == nil {
		return
	}
	*m = ThroughputModel{}
}

// Values returns ready frames per second, bytes per second and polls per
// second over the last interval.
func (m *ThroughputModel) Values() (fps, bytesPerSec, pollsPerSec float64) {
	if m == nil {
		return 0, 0, 0
	}
	return m.fps, m.bps, m.pollRate
}

// Last returns the most recent raw sample.
func (m *ThroughputModel) Last() capture.CaptureStats {
	if m == nil {
		return capture.CaptureStats{}
	}
	return m.last
}
