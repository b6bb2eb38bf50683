//go:build !darwin

package capture

import (
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/vova616/screenshot"
)

// ScreenshotCapture is the portable synchronous backend. Each Frame grabs
// the display rectangle into a fresh RGBA image.
type ScreenshotCapture struct {
	rect   image.Rectangle
	logger *slog.Logger
	closed atomic.Bool
}

func newScreenshotCapture(opts Options, logger *slog.Logger) (*ScreenshotCapture, error) {
	r := opts.Display().Bounds()
	if r.Empty() {
		return nil, &InitError{Backend: BackendScreenshot, Op: "display bounds", Err: ErrSize}
	}
	return &ScreenshotCapture{rect: r, logger: logger}, nil
}

// Frame returns Ready with the captured pixels, or Blocking when the grab
// fails or the backend is closed.
func (c *ScreenshotCapture) Frame() Frame {
	if c.closed.Load() {
		return Blocking()
	}
	img, err := screenshot.CaptureRect(c.rect)
	if err != nil || img == nil {
		c.logger.Debug("capture.screenshot", "rect", c.rect, "error", err)
		return Blocking()
	}
	b := img.Bounds()
	return readyFrame(newOwnedBuffer(img.Pix, b.Dx(), b.Dy(), img.Stride, FormatRGBA))
}

func (c *ScreenshotCapture) Close() {
	if c.closed.CompareAndSwap(false, true) {
		c.logger.Info("capture.close")
	}
}
