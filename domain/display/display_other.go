//go:build !darwin && !windows

package display

import (
	"image"

	"github.com/kbinani/screenshot"
)

// X11/Xinerama exposes no primary flag through screenshot; the output
// anchored at the desktop origin is treated as primary, falling back to the
// first one listed.
func enumerate() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return []Display{}, nil
	}
	bounds := make([]image.Rectangle, n)
	primary := 0
	for i := 0; i < n; i++ {
		bounds[i] = screenshot.GetDisplayBounds(i)
		if bounds[i].Min == (image.Point{}) && bounds[primary].Min != (image.Point{}) {
			primary = i
		}
	}
	out := make([]Display, 0, n)
	for i, b := range bounds {
		kind := KindStandard
		if i == primary {
			kind = KindPrimary
		}
		out = append(out, New(uintptr(i), b, kind))
	}
	return out, nil
}
