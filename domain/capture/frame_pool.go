package capture

import (
	"bytes"
	"image"
	"sync"
)

// Reusable RGBA targets for buffer conversion. A large display frame is
// tens of megabytes; images retired by the poller go back here instead of
// to the garbage collector.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns an RGBA image of w x h. The returned Pix length
// exactly matches w*h*4 and Stride is w*4.
func acquireFrame(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: image.Rect(0, 0, w, h)}
	}
	if v := framePool.Get(); v != nil {
		if img := fitFrame(v.(*image.RGBA), w, h); img != nil {
			return img
		}
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// fitFrame reshapes img to w x h over its existing backing array, or
// returns nil when the array is too small.
func fitFrame(img *image.RGBA, w, h int) *image.RGBA {
	needed := w * h * 4
	if img == nil || w <= 0 || h <= 0 || cap(img.Pix) < needed {
		return nil
	}
	img.Stride = w * 4
	img.Rect = image.Rect(0, 0, w, h)
	img.Pix = img.Pix[:needed]
	return img
}

// RecycleFrame returns img to the pool. The caller must be its only owner
// and must not touch it afterwards.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := *img
	out.Pix = bytes.Clone(img.Pix)
	return &out
}
