//go:build darwin

package capture

/*
#cgo CFLAGS: -fblocks -Wno-deprecated-declarations
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework IOSurface
#include <CoreGraphics/CoreGraphics.h>
#include <IOSurface/IOSurface.h>
#include <dispatch/dispatch.h>
#include <stdint.h>

// 'BGRA': 32-bit words, bytes B,G,R,A in memory.
#define STREAM_PIXEL_FORMAT 1111970369

extern void pixelStreamDeliver(uintptr_t id, uintptr_t surface);

static uintptr_t streamQueueCreate(void) {
    return (uintptr_t)dispatch_queue_create("pixel-stream.capture", DISPATCH_QUEUE_SERIAL);
}

static void streamQueueRelease(uintptr_t q) {
    dispatch_release((dispatch_queue_t)q);
}

static void streamNoop(void *ctx) {}

// streamQueueBarrier returns once every handler already enqueued on q ran.
static void streamQueueBarrier(uintptr_t q) {
    dispatch_sync_f((dispatch_queue_t)q, NULL, streamNoop);
}

static uintptr_t streamCreate(uint32_t display, size_t width, size_t height, int cursor,
                              double minFrameTime, int queueDepth, uintptr_t q, uintptr_t id) {
    CFNumberRef minTime = CFNumberCreate(NULL, kCFNumberDoubleType, &minFrameTime);
    CFNumberRef depth = CFNumberCreate(NULL, kCFNumberIntType, &queueDepth);
    const void *keys[] = {
        kCGDisplayStreamShowCursor,
        kCGDisplayStreamPreserveAspectRatio,
        kCGDisplayStreamMinimumFrameTime,
        kCGDisplayStreamQueueDepth,
    };
    const void *values[] = {
        cursor ? kCFBooleanTrue : kCFBooleanFalse,
        kCFBooleanFalse,
        minTime,
        depth,
    };
    CFDictionaryRef props = CFDictionaryCreate(NULL, keys, values, 4,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    CFRelease(minTime);
    CFRelease(depth);

    CGDisplayStreamRef stream = CGDisplayStreamCreateWithDispatchQueue(
        (CGDirectDisplayID)display, width, height, STREAM_PIXEL_FORMAT, props,
        (dispatch_queue_t)q,
        ^(CGDisplayStreamFrameStatus status, uint64_t displayTime,
          IOSurfaceRef surface, CGDisplayStreamUpdateRef update) {
            if (status != kCGDisplayStreamFrameStatusFrameComplete || surface == NULL) {
                return;
            }
            // the surface is only guaranteed alive for this call
            CFRetain(surface);
            pixelStreamDeliver(id, (uintptr_t)surface);
        });
    CFRelease(props);
    return (uintptr_t)stream;
}

static int streamStart(uintptr_t s) { return (int)CGDisplayStreamStart((CGDisplayStreamRef)s); }
static int streamStop(uintptr_t s)  { return (int)CGDisplayStreamStop((CGDisplayStreamRef)s); }
static void cfRelease(uintptr_t ref) { CFRelease((CFTypeRef)ref); }

static int surfaceLock(uintptr_t s) {
    IOSurfaceRef r = (IOSurfaceRef)s;
    IOSurfaceIncrementUseCount(r);
    kern_return_t kr = IOSurfaceLock(r, kIOSurfaceLockReadOnly, NULL);
    if (kr != KERN_SUCCESS) {
        IOSurfaceDecrementUseCount(r);
    }
    return (int)kr;
}

static void surfaceUnlock(uintptr_t s) {
    IOSurfaceRef r = (IOSurfaceRef)s;
    IOSurfaceUnlock(r, kIOSurfaceLockReadOnly, NULL);
    IOSurfaceDecrementUseCount(r);
}

static void *surfaceBase(uintptr_t s)      { return IOSurfaceGetBaseAddress((IOSurfaceRef)s); }
static size_t surfaceStride(uintptr_t s)   { return IOSurfaceGetBytesPerRow((IOSurfaceRef)s); }
static size_t surfaceWidth(uintptr_t s)    { return IOSurfaceGetWidth((IOSurfaceRef)s); }
static size_t surfaceHeight(uintptr_t s)   { return IOSurfaceGetHeight((IOSurfaceRef)s); }
*/
import "C"

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"
)

const platformBackend = BackendStream

func openPlatform(kind Backend, opts Options, logger *slog.Logger) (Capture, error) {
	if kind != BackendStream {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, kind)
	}
	return newStreamCapture(opts, logger)
}

// ioSurface is a retained IOSurfaceRef delivered by the display stream.
type ioSurface uintptr

func (s ioSurface) lock() (surfaceView, error) {
	if kr := C.surfaceLock(C.uintptr_t(s)); kr != 0 {
		return surfaceView{}, fmt.Errorf("IOSurfaceLock kern_return=%d", int(kr))
	}
	base := C.surfaceBase(C.uintptr_t(s))
	v := surfaceView{
		width:  int(C.surfaceWidth(C.uintptr_t(s))),
		height: int(C.surfaceHeight(C.uintptr_t(s))),
		stride: int(C.surfaceStride(C.uintptr_t(s))),
	}
	if base == nil || v.stride*v.height == 0 {
		C.surfaceUnlock(C.uintptr_t(s))
		return surfaceView{}, fmt.Errorf("IOSurface has no mapped memory")
	}
	v.pix = unsafe.Slice((*byte)(base), v.stride*v.height)
	return v, nil
}

func (s ioSurface) unlock()  { C.surfaceUnlock(C.uintptr_t(s)) }
func (s ioSurface) release() { C.cfRelease(C.uintptr_t(s)) }

// Stream callbacks look their capture up by id. Delivery holds the read
// lock so Close, which removes the entry under the write lock, knows no
// callback can touch the core afterwards.
var streams = struct {
	sync.RWMutex
	next uintptr
	byID map[uintptr]*streamCore
}{byID: make(map[uintptr]*streamCore)}

func registerStream(core *streamCore) uintptr {
	streams.Lock()
	defer streams.Unlock()
	streams.next++
	streams.byID[streams.next] = core
	return streams.next
}

func unregisterStream(id uintptr) {
	streams.Lock()
	delete(streams.byID, id)
	streams.Unlock()
}

func deliverToStream(id, ref uintptr) {
	streams.RLock()
	defer streams.RUnlock()
	core, ok := streams.byID[id]
	if !ok {
		ioSurface(ref).release()
		return
	}
	core.deliver(ioSurface(ref))
}

// StreamCapture is the asynchronous zero-copy backend built on
// CGDisplayStream. The OS pushes IOSurfaces on a private dispatch queue;
// Frame hands out the newest one under a read lock.
type StreamCapture struct {
	core      *streamCore
	id        uintptr
	stream    C.uintptr_t
	queue     C.uintptr_t
	logger    *slog.Logger
	closeOnce sync.Once
}

func newStreamCapture(opts Options, logger *slog.Logger) (*StreamCapture, error) {
	d := opts.Display()
	if d.Width() == 0 || d.Height() == 0 {
		return nil, &InitError{Backend: BackendStream, Op: "display bounds", Err: ErrSize}
	}
	minFrame := 0.0
	if iv := opts.MinFrameInterval(); iv > 0 {
		minFrame = iv.Seconds()
	}

	s := &StreamCapture{core: newStreamCore(FormatARGB8888, logger), logger: logger}
	s.id = registerStream(s.core)
	s.queue = C.streamQueueCreate()
	if s.queue == 0 {
		unregisterStream(s.id)
		return nil, &InitError{Backend: BackendStream, Op: "dispatch_queue_create"}
	}

	cursor := C.int(0)
	if opts.Cursor() {
		cursor = 1
	}
	s.stream = C.streamCreate(C.uint32_t(d.Handle()), C.size_t(d.Width()), C.size_t(d.Height()),
		cursor, C.double(minFrame), C.int(opts.QueueDepth()), s.queue, C.uintptr_t(s.id))
	if s.stream == 0 {
		C.streamQueueRelease(s.queue)
		unregisterStream(s.id)
		var err error
		if !HasPermission() {
			err = ErrPermission
		}
		return nil, &InitError{Backend: BackendStream, Op: "CGDisplayStreamCreateWithDispatchQueue", Err: err}
	}
	if rc := C.streamStart(s.stream); rc != 0 {
		C.cfRelease(s.stream)
		C.streamQueueRelease(s.queue)
		unregisterStream(s.id)
		return nil, &InitError{Backend: BackendStream, Op: "CGDisplayStreamStart", Code: int32(rc)}
	}
	return s, nil
}

// Frame returns the newest surface delivered since the previous call, or
// Blocking. It never waits on the stream.
func (s *StreamCapture) Frame() Frame { return s.core.frame() }

// Close stops the stream, waits out in-flight callbacks and releases the
// stream, the queue and any surface that was never polled. Buffers already
// handed out stay valid until released.
func (s *StreamCapture) Close() {
	s.closeOnce.Do(func() {
		if rc := C.streamStop(s.stream); rc != 0 {
			s.logger.Warn("capture.close", "op", "CGDisplayStreamStop", "code", int(rc))
		}
		C.streamQueueBarrier(s.queue)
		unregisterStream(s.id)
		s.core.drain()
		C.cfRelease(s.stream)
		C.streamQueueRelease(s.queue)
		s.logger.Info("capture.close",
			"delivered", s.core.delivered.Load(),
			"dropped", s.core.dropped.Load(),
		)
	})
}
