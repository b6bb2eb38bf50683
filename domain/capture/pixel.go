package capture

import (
	"fmt"
	"image"
)

// PixelFormat describes the byte layout of a 32-bit pixel. The format is a
// capability of the backend that produced a buffer, not a constant.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	// FormatARGB8888 is 32-bit ARGB words stored little-endian, i.e. bytes
	// B, G, R, A. Produced by the streaming backend.
	FormatARGB8888
	// FormatBGRX is the GDI device-native order; the fourth byte is
	// undefined. Produced by the blit backend.
	FormatBGRX
	// FormatRGBA is R, G, B, A bytes as in image.RGBA.
	FormatRGBA
)

func (f PixelFormat) String() string {
	switch f {
	case FormatARGB8888:
		return "argb8888"
	case FormatBGRX:
		return "bgrx"
	case FormatRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// BytesPerPixel is 4 for every known format.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatUnknown {
		return 0
	}
	return 4
}

// ConvertToRGBA copies b into dst, swizzling to RGBA and forcing opaque
// alpha. dst must have exactly the buffer's width and height.
func ConvertToRGBA(dst *image.RGBA, b *Buffer) error {
	if dst == nil || b == nil {
		return fmt.Errorf("%w: nil image or buffer", ErrSize)
	}
	w, h := b.Width, b.Height
	if dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		return fmt.Errorf("%w: buffer %dx%d image %dx%d", ErrSize, w, h, dst.Rect.Dx(), dst.Rect.Dy())
	}
	if b.Stride < w*4 || len(b.Pix) < (h-1)*b.Stride+w*4 {
		return fmt.Errorf("%w: stride=%d len=%d for %dx%d", ErrSize, b.Stride, len(b.Pix), w, h)
	}

	var swap bool
	switch b.Format {
	case FormatARGB8888, FormatBGRX:
		swap = true
	case FormatRGBA:
	default:
		return fmt.Errorf("%w: %d", ErrFormat, b.Format)
	}

	rowLen := w * 4
	for y := 0; y < h; y++ {
		src := b.Row(y)
		out := dst.Pix[y*dst.Stride : y*dst.Stride+rowLen]
		if !swap {
			copy(out, src)
			for i := 3; i < rowLen; i += 4 {
				out[i] = 0xFF
			}
			continue
		}
		for i := 0; i < rowLen; i += 4 {
			out[i+0] = src[i+2]
			out[i+1] = src[i+1]
			out[i+2] = src[i+0]
			out[i+3] = 0xFF
		}
	}
	return nil
}
