package capture

import "testing"

type countingCapture struct {
	frames, closes int
}

func (c *countingCapture) Frame() Frame {
	c.frames++
	return readyFrame(newOwnedBuffer(make([]byte, 4), 1, 1, 4, FormatRGBA))
}

func (c *countingCapture) Close() { c.closes++ }

func TestSwitchable_EmptyIsBlocking(t *testing.T) {
	s := NewSwitchable(nil)
	if f := s.Frame(); f.Status != StatusBlocking {
		t.Fatalf("empty switchable returned %v", f.Status)
	}
	if s.Installed() {
		t.Fatalf("empty switchable reports a backend")
	}
	s.Close()
}

func TestSwitchable_SwapClosesPrevious(t *testing.T) {
	a, b := &countingCapture{}, &countingCapture{}
	s := NewSwitchable(a)
	if !s.Frame().Ready() || a.frames != 1 {
		t.Fatalf("frame not delegated to first backend")
	}
	s.Swap(b)
	if a.closes != 1 {
		t.Fatalf("previous backend closed %d times", a.closes)
	}
	s.Frame()
	if b.frames != 1 || a.frames != 1 {
		t.Fatalf("frames a=%d b=%d", a.frames, b.frames)
	}
	s.Close()
	s.Close()
	if b.closes != 1 {
		t.Fatalf("current backend closed %d times", b.closes)
	}
}
