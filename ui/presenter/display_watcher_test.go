package presenter

import (
	"image"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/soocke/pixel-stream-go/domain/display"
)

type fakeDisplays struct {
	mu   sync.Mutex
	list []display.Display
}

func (f *fakeDisplays) set(l []display.Display) {
	f.mu.Lock()
	f.list = l
	f.mu.Unlock()
}

func (f *fakeDisplays) all() ([]display.Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.list), nil
}

type changeRecorder struct {
	mu    sync.Mutex
	calls [][]display.Display
}

func (r *changeRecorder) record(l []display.Display) {
	r.mu.Lock()
	r.calls = append(r.calls, l)
	r.mu.Unlock()
}

func (r *changeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestDisplayWatcher_FiresOnHotplug(t *testing.T) {
	primary := display.New(1, image.Rect(0, 0, 1920, 1080), display.KindPrimary)
	second := display.New(2, image.Rect(1920, 0, 3840, 1080), display.KindStandard)
	src := &fakeDisplays{list: []display.Display{primary}}
	rec := &changeRecorder{}
	w := NewDisplayWatcher(src.all, rec.record, nil, 20*time.Millisecond)

	w.Start()
	w.Start()
	time.Sleep(80 * time.Millisecond)
	if n := rec.count(); n != 0 {
		t.Fatalf("stable displays fired %d times", n)
	}

	src.set([]display.Display{primary, second})
	time.Sleep(80 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Fatalf("expected one change after plug, got %d", n)
	}

	src.set([]display.Display{primary})
	time.Sleep(80 * time.Millisecond)
	w.Stop()
	w.Stop()
	if n := rec.count(); n != 2 {
		t.Fatalf("expected two changes after unplug, got %d", n)
	}

	src.set(nil)
	time.Sleep(60 * time.Millisecond)
	if n := rec.count(); n != 2 {
		t.Fatalf("watcher fired after Stop")
	}
}

func TestDisplayWatcher_GeometryChangeFires(t *testing.T) {
	src := &fakeDisplays{list: []display.Display{display.New(1, image.Rect(0, 0, 1920, 1080), display.KindPrimary)}}
	rec := &changeRecorder{}
	w := NewDisplayWatcher(src.all, rec.record, nil, 20*time.Millisecond)
	w.Start()
	defer w.Stop()
	time.Sleep(50 * time.Millisecond)

	src.set([]display.Display{display.New(1, image.Rect(0, 0, 2560, 1440), display.KindPrimary)})
	time.Sleep(80 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Fatalf("resolution change fired %d times want 1", n)
	}
}
