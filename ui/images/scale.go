package images

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// pngEncoder skips compression; preview PNGs are decoded by Tk immediately.
var pngEncoder = png.Encoder{CompressionLevel: png.NoCompression}

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = pngEncoder.Encode(&buf, img)
	return buf.Bytes()
}

// FitSize returns the largest w x h with src's aspect ratio that fits in
// maxW x maxH. Sources that already fit keep their size.
func FitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	ratio := float64(maxW) / float64(srcW)
	if r := float64(maxH) / float64(srcH); r < ratio {
		ratio = r
	}
	w := int(float64(srcW)*ratio + 0.5)
	h := int(float64(srcH)*ratio + 0.5)
	return max(w, 1), max(h, 1)
}

// ScaleToFit scales src to fit within maxW x maxH preserving aspect ratio.
// If the source already fits, the original is returned. dst is reused when
// it has the right size, so a preview loop allocates once.
func ScaleToFit(dst *image.RGBA, src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, b, draw.Src, nil)
	return dst
}
