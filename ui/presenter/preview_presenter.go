package presenter

import (
	"image"

	"github.com/soocke/pixel-stream-go/domain/capture"
	"github.com/soocke/pixel-stream-go/ui/images"
)

// FrameSource supplies the most recent polled frame.
type FrameSource interface {
	Running() bool
	WithLatest(fn func(snap capture.FrameSnapshot)) bool
}

// PreviewView is the UI surface showing the scaled frame.
type PreviewView interface {
	UpdatePreview(img image.Image)
}

// PreviewPresenter pushes new snapshots to the preview, scaled to fit.
// Snapshots whose sequence was already shown are skipped.
type PreviewPresenter struct {
	Enabled func() bool
	Source  FrameSource
	View    PreviewView
	MaxW    int
	MaxH    int

	lastSeq uint64
	scratch *image.RGBA
}

func NewPreviewPresenter(enabled func() bool, src FrameSource, view PreviewView, maxW, maxH int) *PreviewPresenter {
	return &PreviewPresenter{Enabled: enabled, Source: src, View: view, MaxW: maxW, MaxH: maxH}
}

// ProcessFrame updates the view if a newer snapshot is available and
// reports whether it did.
func (p *PreviewPresenter) ProcessFrame() bool {
	if p == nil || p.Source == nil || p.View == nil {
		return false
	}
	if p.Enabled != nil && !p.Enabled() {
		return false
	}
	shown := false
	p.Source.WithLatest(func(snap capture.FrameSnapshot) {
		if snap.Image == nil || snap.Sequence == p.lastSeq {
			return
		}
		p.lastSeq = snap.Sequence
		scaled := images.ScaleToFit(p.scratch, snap.Image, p.MaxW, p.MaxH)
		if rgba, ok := scaled.(*image.RGBA); ok && rgba != snap.Image {
			p.scratch = rgba
		}
		// the view encodes synchronously; snap.Image is recycled afterwards
		p.View.UpdatePreview(scaled)
		shown = true
	})
	return shown
}
