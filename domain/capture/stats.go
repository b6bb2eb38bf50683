package capture

import (
	"image"
	"time"
)

// FrameSnapshot is a converted copy of the latest Ready frame. It stays
// valid after the source buffer was released; whether the caller owns Image
// depends on the accessor it came from.
type FrameSnapshot struct {
	Image      *image.RGBA
	Format     PixelFormat
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises poll loop behaviour for instrumentation.
type CaptureStats struct {
	Polls            uint64
	Ready            uint64
	Skipped          uint64
	Bytes            uint64
	AvgConvert       time.Duration
	AvgConvertMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}

// FrameSource provides read-only access to polled frames.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	WithLatest(fn func(snap FrameSnapshot)) bool
	Running() bool
	Stats() CaptureStats
}

// Service exposes lifecycle control on top of FrameSource.
type Service interface {
	FrameSource
	Start()
	Stop()
}
