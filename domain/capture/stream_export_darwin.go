//go:build darwin

package capture

// Kept apart from the cgo definitions in stream_darwin.go: a file with
// //export may only declare C symbols.

/*
#include <stdint.h>
*/
import "C"

//export pixelStreamDeliver
func pixelStreamDeliver(id C.uintptr_t, surface C.uintptr_t) {
	deliverToStream(uintptr(id), uintptr(surface))
}
