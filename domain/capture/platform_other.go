//go:build !darwin && !windows

package capture

import (
	"fmt"
	"log/slog"
)

const platformBackend = BackendScreenshot

func openPlatform(kind Backend, opts Options, logger *slog.Logger) (Capture, error) {
	if kind != BackendScreenshot {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, kind)
	}
	return newScreenshotCapture(opts, logger)
}
