package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrInit matches every backend construction failure via errors.Is.
	ErrInit = errors.New("capture: init failed")
	// ErrUnsupportedBackend is returned when a backend is not built for
	// this platform.
	ErrUnsupportedBackend = errors.New("capture: backend not supported on this platform")
	// ErrFormat is returned when converting a buffer of unknown layout.
	ErrFormat = errors.New("capture: unknown pixel format")
	// ErrSize is returned when buffer geometry does not match its target.
	ErrSize = errors.New("capture: buffer size mismatch")
	// ErrPermission is attached to an InitError when the OS has not granted
	// screen recording access.
	ErrPermission = errors.New("capture: screen recording permission not granted")
)

// InitError reports a failed backend construction. Code carries the native
// status (CGError, Win32 last error) when one is available. Construction is
// atomic: when an InitError is returned no native resource is left open.
type InitError struct {
	Backend Backend
	Op      string
	Code    int32
	Err     error
}

func (e *InitError) Error() string {
	msg := fmt.Sprintf("capture: %s backend: %s failed code=%d", e.Backend, e.Op, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InitError) Unwrap() error { return e.Err }

func (e *InitError) Is(target error) bool { return target == ErrInit }
