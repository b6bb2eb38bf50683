//go:build windows

package display

import (
	"errors"
	"image"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	modUser32               = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = modUser32.NewProc("EnumDisplayMonitors")
	procSetProcessDPIAware  = modUser32.NewProc("SetProcessDPIAware")
	dpiAwareOnce            sync.Once
	monitorCallbackOnce     sync.Once
	monitorCallback         uintptr
	monitorMu               sync.Mutex
	monitorFound            []Display
)

// EnumDisplayMonitors callbacks are a scarce resource (windows.NewCallback
// never frees them), so a single callback collects into monitorFound while
// monitorMu is held.
func monitorEnumProc(hMonitor, _, _, _ uintptr) uintptr {
	info := win.MONITORINFO{}
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(win.HMONITOR(hMonitor), &info) {
		// keep enumerating; one unreadable monitor should not hide the rest
		return 1
	}
	r := info.RcMonitor
	kind := KindStandard
	if info.DwFlags&win.MONITORINFOF_PRIMARY != 0 {
		kind = KindPrimary
	}
	bounds := image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
	monitorFound = append(monitorFound, New(hMonitor, bounds, kind))
	return 1
}

// makeDPIAware switches the process to system DPI awareness so monitor
// rectangles and GDI blits use physical pixels.
func makeDPIAware() {
	dpiAwareOnce.Do(func() {
		if procSetProcessDPIAware.Find() == nil {
			_, _, _ = procSetProcessDPIAware.Call()
		}
	})
}

func enumerate() ([]Display, error) {
	makeDPIAware()
	monitorCallbackOnce.Do(func() {
		monitorCallback = windows.NewCallback(monitorEnumProc)
	})

	monitorMu.Lock()
	defer monitorMu.Unlock()
	monitorFound = nil

	ok, _, callErr := procEnumDisplayMonitors.Call(0, 0, monitorCallback, 0)
	if ok == 0 {
		code := int32(0)
		var errno syscall.Errno
		if errors.As(callErr, &errno) {
			code = int32(errno)
		}
		return nil, &EnumerationError{Op: "EnumDisplayMonitors", Code: code, Err: callErr}
	}
	out := make([]Display, len(monitorFound))
	copy(out, monitorFound)
	monitorFound = nil
	return out, nil
}
