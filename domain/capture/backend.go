package capture

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Backend names a capture implementation.
type Backend uint8

const (
	// BackendAuto picks the native backend for the running platform.
	BackendAuto Backend = iota
	// BackendStream is the asynchronous, zero-copy display stream (macOS).
	BackendStream
	// BackendBlit is the synchronous device-context copy (Windows).
	BackendBlit
	// BackendScreenshot is the portable synchronous copy.
	BackendScreenshot
)

func (b Backend) String() string {
	switch b {
	case BackendStream:
		return "stream"
	case BackendBlit:
		return "blit"
	case BackendScreenshot:
		return "screenshot"
	default:
		return "auto"
	}
}

// ParseBackend maps a config string onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "stream":
		return BackendStream, nil
	case "blit":
		return BackendBlit, nil
	case "screenshot":
		return BackendScreenshot, nil
	}
	return BackendAuto, fmt.Errorf("capture: unknown backend %q", s)
}

// Open constructs the platform's native backend for opts.
func Open(opts Options, logger *slog.Logger) (Capture, error) {
	return OpenBackend(BackendAuto, opts, logger)
}

// OpenBackend constructs the named backend. Failures are *InitError (or
// ErrUnsupportedBackend) and leave nothing allocated.
func OpenBackend(kind Backend, opts Options, logger *slog.Logger) (Capture, error) {
	if kind == BackendAuto {
		kind = platformBackend
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("backend", kind.String(), "session", uuid.NewString())

	c, err := openPlatform(kind, opts, logger)
	if err != nil {
		logger.Error("capture.open", "display", opts.Display().String(), "error", err)
		return nil, err
	}
	logger.Info("capture.open",
		"display", opts.Display().String(),
		"cursor", opts.Cursor(),
		"frame_rate", opts.FrameRate(),
		"queue_depth", opts.QueueDepth(),
	)
	return c, nil
}
