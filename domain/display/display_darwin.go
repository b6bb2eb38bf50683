//go:build darwin

package display

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

#define MAX_DISPLAYS 32

typedef struct {
    uint32_t id;
    int32_t  x;
    int32_t  y;
    uint32_t width;
    uint32_t height;
    int      main;
} displayInfo;

static int listDisplays(displayInfo *out, uint32_t *count) {
    CGDirectDisplayID ids[MAX_DISPLAYS];
    uint32_t n = 0;
    CGError err = CGGetActiveDisplayList(MAX_DISPLAYS, ids, &n);
    if (err != kCGErrorSuccess) {
        *count = 0;
        return (int)err;
    }
    for (uint32_t i = 0; i < n; i++) {
        CGRect b = CGDisplayBounds(ids[i]);
        out[i].id     = ids[i];
        out[i].x      = (int32_t)b.origin.x;
        out[i].y      = (int32_t)b.origin.y;
        out[i].width  = (uint32_t)CGDisplayPixelsWide(ids[i]);
        out[i].height = (uint32_t)CGDisplayPixelsHigh(ids[i]);
        out[i].main   = CGDisplayIsMain(ids[i]) ? 1 : 0;
    }
    *count = n;
    return 0;
}
*/
import "C"

import "image"

const maxDisplays = C.MAX_DISPLAYS

func enumerate() ([]Display, error) {
	var infos [maxDisplays]C.displayInfo
	var count C.uint32_t
	if rc := C.listDisplays(&infos[0], &count); rc != 0 {
		return nil, &EnumerationError{Op: "CGGetActiveDisplayList", Code: int32(rc)}
	}
	out := make([]Display, 0, int(count))
	for i := 0; i < int(count); i++ {
		info := infos[i]
		kind := KindStandard
		if info.main != 0 {
			kind = KindPrimary
		}
		x, y := int(info.x), int(info.y)
		bounds := image.Rect(x, y, x+int(info.width), y+int(info.height))
		out = append(out, New(uintptr(info.id), bounds, kind))
	}
	return out, nil
}
