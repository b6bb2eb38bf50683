//go:build windows

package capture

// Windows screen capture into a persistent DIB section. The memory DC and
// bitmap are created once per backend; each Frame BitBlt's the display
// rectangle into them and hands out a view over the section's bits.

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// Win32 DLL procs not covered by lxn/win (lazy loaded)
var (
	modGdi32             = windows.NewLazySystemDLL("gdi32.dll")
	procCreateDIBSection = modGdi32.NewProc("CreateDIBSection")
	procGdiFlush         = modGdi32.NewProc("GdiFlush")
)

const platformBackend = BackendBlit

func openPlatform(kind Backend, opts Options, logger *slog.Logger) (Capture, error) {
	switch kind {
	case BackendBlit:
		return newBlitCapture(opts, logger)
	case BackendScreenshot:
		return newScreenshotCapture(opts, logger)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, kind)
}

// gdiOps holds the GDI calls made per frame and at teardown.
type gdiOps struct {
	getDC        func(hwnd win.HWND) win.HDC
	releaseDC    func(hwnd win.HWND, hdc win.HDC) bool
	bitBlt       func(dst win.HDC, x, y, w, h int32, src win.HDC, sx, sy int32, rop uint32) bool
	flush        func()
	selectObject func(hdc win.HDC, obj win.HGDIOBJ) win.HGDIOBJ
	deleteObject func(obj win.HGDIOBJ) bool
	deleteDC     func(hdc win.HDC) bool
}

var nativeGDI = gdiOps{
	getDC:        win.GetDC,
	releaseDC:    win.ReleaseDC,
	bitBlt:       win.BitBlt,
	flush:        func() { _, _, _ = procGdiFlush.Call() },
	selectObject: win.SelectObject,
	deleteObject: win.DeleteObject,
	deleteDC:     win.DeleteDC,
}

func createDIBSection(hdc win.HDC, bi *win.BITMAPINFO, bits *unsafe.Pointer) win.HBITMAP {
	ret, _, _ := procCreateDIBSection.Call(
		uintptr(hdc),
		uintptr(unsafe.Pointer(bi)),
		uintptr(win.DIB_RGB_COLORS),
		uintptr(unsafe.Pointer(bits)),
		0, 0)
	return win.HBITMAP(ret)
}

// BlitCapture is the synchronous copy backend. Frame returns Ready after
// every successful copy; the buffer aliases the backend's bitmap and is overwritten by the next
// Frame call.
type BlitCapture struct {
	x, y          int32
	width, height int32

	memDC  win.HDC
	bmp    win.HBITMAP
	oldObj win.HGDIOBJ
	pix    []byte
	gdi    gdiOps

	logger    *slog.Logger
	closeOnce sync.Once
}

func newBlitCapture(opts Options, logger *slog.Logger) (*BlitCapture, error) {
	d := opts.Display()
	w, h := int32(d.Width()), int32(d.Height())
	if w <= 0 || h <= 0 {
		return nil, &InitError{Backend: BackendBlit, Op: "display bounds", Err: ErrSize}
	}

	memDC := win.CreateCompatibleDC(0)
	if memDC == 0 {
		return nil, &InitError{Backend: BackendBlit, Op: "CreateCompatibleDC", Code: int32(win.GetLastError())}
	}

	// top-down 32-bit DIB
	bi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       w,
			BiHeight:      -h,
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
			BiSizeImage:   uint32(w * h * 4),
		},
	}
	var bits unsafe.Pointer
	bmp := createDIBSection(memDC, &bi, &bits)
	if bmp == 0 || bits == nil {
		code := int32(win.GetLastError())
		if bmp != 0 {
			win.DeleteObject(win.HGDIOBJ(bmp))
		}
		win.DeleteDC(memDC)
		return nil, &InitError{Backend: BackendBlit, Op: "CreateDIBSection", Code: code}
	}

	old := win.SelectObject(memDC, win.HGDIOBJ(bmp))
	if old == 0 || old == win.HGDIOBJ(^uintptr(0)) {
		code := int32(win.GetLastError())
		win.DeleteObject(win.HGDIOBJ(bmp))
		win.DeleteDC(memDC)
		return nil, &InitError{Backend: BackendBlit, Op: "SelectObject", Code: code}
	}

	return &BlitCapture{
		x:      d.X(),
		y:      d.Y(),
		width:  w,
		height: h,
		memDC:  memDC,
		bmp:    bmp,
		oldObj: old,
		pix:    unsafe.Slice((*byte)(bits), int(w)*int(h)*4),
		gdi:    nativeGDI,
		logger: logger,
	}, nil
}

// Frame copies the display into the bitmap and returns it as Ready. When
// the screen DC or the copy fails nothing new was captured and Frame
// returns Blocking.
func (c *BlitCapture) Frame() Frame {
	if c.pix == nil {
		return Blocking()
	}
	screenDC := c.gdi.getDC(0)
	if screenDC == 0 {
		c.logger.Debug("capture.blit", "op", "GetDC", "winerr", win.GetLastError())
		return Blocking()
	}
	ok := c.gdi.bitBlt(c.memDC, 0, 0, c.width, c.height, screenDC, c.x, c.y, win.SRCCOPY)
	if !ok {
		c.logger.Debug("capture.blit", "op", "BitBlt", "winerr", win.GetLastError())
	}
	c.gdi.releaseDC(0, screenDC)
	if !ok {
		return Blocking()
	}
	// pending GDI work must land before the bits are read
	c.gdi.flush()

	w, h := int(c.width), int(c.height)
	return readyFrame(newOwnedBuffer(c.pix, w, h, w*4, FormatBGRX))
}

// Close unselects the DIB section from the memory DC, deletes the bitmap
// and then the DC. Failures are logged.
func (c *BlitCapture) Close() {
	c.closeOnce.Do(func() {
		c.gdi.selectObject(c.memDC, c.oldObj)
		if !c.gdi.deleteObject(win.HGDIOBJ(c.bmp)) {
			c.logger.Warn("capture.close", "op", "DeleteObject", "winerr", win.GetLastError())
		}
		if !c.gdi.deleteDC(c.memDC) {
			c.logger.Warn("capture.close", "op", "DeleteDC", "winerr", win.GetLastError())
		}
		c.pix = nil
		c.logger.Info("capture.close")
	})
}
