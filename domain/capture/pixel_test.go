package capture

import (
	"errors"
	"image"
	"testing"
)

func TestConvertToRGBA_SwizzlesPaddedRows(t *testing.T) {
	const w, h, stride = 2, 2, 12 // 4 bytes of padding per row
	pix := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x*4
			pix[i+0] = 10 // B
			pix[i+1] = 20 // G
			pix[i+2] = 30 // R
			pix[i+3] = 0  // undefined
		}
		pix[y*stride+8] = 0xEE
	}
	for _, f := range []PixelFormat{FormatARGB8888, FormatBGRX} {
		b := newOwnedBuffer(pix, w, h, stride, f)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		if err := ConvertToRGBA(dst, b); err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		for i := 0; i < len(dst.Pix); i += 4 {
			if dst.Pix[i] != 30 || dst.Pix[i+1] != 20 || dst.Pix[i+2] != 10 || dst.Pix[i+3] != 0xFF {
				t.Fatalf("%v: pixel %d = %v", f, i/4, dst.Pix[i:i+4])
			}
		}
	}
}

func TestConvertToRGBA_CopiesRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	copy(src.Pix, []byte{1, 2, 3, 0, 4, 5, 6, 7, 8, 9, 10, 11})
	b := newOwnedBuffer(src.Pix, 3, 1, src.Stride, FormatRGBA)
	dst := image.NewRGBA(image.Rect(0, 0, 3, 1))
	if err := ConvertToRGBA(dst, b); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255, 8, 9, 10, 255}
	for i := range want {
		if dst.Pix[i] != want[i] {
			t.Fatalf("pix %v want %v", dst.Pix, want)
		}
	}
}

func TestConvertToRGBA_Errors(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	cases := []struct {
		name string
		buf  *Buffer
		want error
	}{
		{"unknown format", newOwnedBuffer(make([]byte, 16), 2, 2, 8, FormatUnknown), ErrFormat},
		{"size mismatch", newOwnedBuffer(make([]byte, 36), 3, 3, 12, FormatRGBA), ErrSize},
		{"short stride", newOwnedBuffer(make([]byte, 16), 2, 2, 4, FormatRGBA), ErrSize},
		{"short pix", newOwnedBuffer(make([]byte, 12), 2, 2, 8, FormatRGBA), ErrSize},
		{"nil buffer", nil, ErrSize},
	}
	for _, tc := range cases {
		if err := ConvertToRGBA(dst, tc.buf); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err=%v want %v", tc.name, err, tc.want)
		}
	}
}

func TestPixelFormat_BytesPerPixel(t *testing.T) {
	if FormatUnknown.BytesPerPixel() != 0 {
		t.Fatalf("unknown format should report 0 bytes per pixel")
	}
	for _, f := range []PixelFormat{FormatARGB8888, FormatBGRX, FormatRGBA} {
		if f.BytesPerPixel() != 4 {
			t.Fatalf("%v bytes per pixel = %d", f, f.BytesPerPixel())
		}
	}
}
