package display

import (
	"errors"
	"fmt"
	"image"
)

// Kind distinguishes the operating system's primary output from the rest.
type Kind uint8

const (
	KindStandard Kind = iota
	KindPrimary
)

func (k Kind) String() string {
	if k == KindPrimary {
		return "primary"
	}
	return "standard"
}

// Display identifies a physical monitor and its geometry at enumeration
// time. It is an immutable value and owns no native resource. A handle may
// go stale when the monitor is unplugged; callers re-enumerate to notice.
type Display struct {
	handle uintptr
	x, y   int32
	width  uint32
	height uint32
	kind   Kind
}

// New builds a Display from a platform handle and its bounds in the global
// desktop coordinate space. Negative sizes are clamped to zero.
func New(handle uintptr, bounds image.Rectangle, kind Kind) Display {
	w, h := bounds.Dx(), bounds.Dy()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Display{
		handle: handle,
		x:      int32(bounds.Min.X),
		y:      int32(bounds.Min.Y),
		width:  uint32(w),
		height: uint32(h),
		kind:   kind,
	}
}

func (d Display) Handle() uintptr { return d.handle }
func (d Display) X() int32        { return d.x }
func (d Display) Y() int32        { return d.y }
func (d Display) Width() uint32   { return d.width }
func (d Display) Height() uint32  { return d.height }
func (d Display) Kind() Kind      { return d.kind }

// Bounds returns the display rectangle in desktop coordinates.
func (d Display) Bounds() image.Rectangle {
	return image.Rect(int(d.x), int(d.y), int(d.x)+int(d.width), int(d.y)+int(d.height))
}

func (d Display) String() string {
	return fmt.Sprintf("display(%#x %s %dx%d@%d,%d)", d.handle, d.kind, d.width, d.height, d.x, d.y)
}

var (
	// ErrNoPrimary is reported when the platform lists no primary output.
	ErrNoPrimary = errors.New("display: no primary display")
	// ErrNotFound is returned by Select for an index outside the enumeration.
	ErrNotFound = errors.New("display: not found")
)

// EnumerationError wraps a failed platform display query.
type EnumerationError struct {
	Op   string // native call that failed
	Code int32  // OS error code, 0 when unavailable
	Err  error
}

func (e *EnumerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display: %s failed code=%d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("display: %s failed code=%d", e.Op, e.Code)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Primary returns the operating system's primary display.
func Primary() (Display, error) {
	all, err := All()
	if err != nil {
		return Display{}, err
	}
	if d, ok := findPrimary(all); ok {
		return d, nil
	}
	return Display{}, &EnumerationError{Op: "primary", Err: ErrNoPrimary}
}

// All returns every active display in platform enumeration order. The
// order is not guaranteed to be stable across calls and nothing is cached.
// An empty slice with a nil error is a valid result.
func All() ([]Display, error) {
	return enumerate()
}

// Select resolves a configured display index: 0 picks the primary display,
// n > 0 picks the nth display (1-based) in enumeration order.
func Select(displays []Display, index int) (Display, error) {
	if index == 0 {
		if d, ok := findPrimary(displays); ok {
			return d, nil
		}
		return Display{}, ErrNoPrimary
	}
	if index < 0 || index > len(displays) {
		return Display{}, fmt.Errorf("%w: index %d of %d", ErrNotFound, index, len(displays))
	}
	return displays[index-1], nil
}

func findPrimary(displays []Display) (Display, bool) {
	for _, d := range displays {
		if d.kind == KindPrimary {
			return d, true
		}
	}
	return Display{}, false
}
