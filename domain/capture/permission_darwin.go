//go:build darwin

package capture

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static int preflightAccess(void) { return CGPreflightScreenCaptureAccess() ? 1 : 0; }
static int requestAccess(void)   { return CGRequestScreenCaptureAccess() ? 1 : 0; }
*/
import "C"

// HasPermission reports whether the process may record the screen. Without
// it the display stream either fails to start or delivers only the desktop
// wallpaper.
func HasPermission() bool { return C.preflightAccess() != 0 }

// RequestPermission shows the system prompt the first time it is called and
// returns the current grant. A grant usually takes effect only after the
// process restarts.
func RequestPermission() bool { return C.requestAccess() != 0 }
