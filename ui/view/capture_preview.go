package view

import (
	"image"

	"github.com/soocke/pixel-stream-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the latest scaled frame in a single label.
type CapturePreview interface {
	UpdatePreview(img image.Image)
	Reset()
}

type capturePreview struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo image instance
	placeW    int
	placeH    int
}

// NewCapturePreview creates the preview label spanning the given row and
// sizes the placeholder to w x h.
func NewCapturePreview(row, w, h int) CapturePreview {
	v := &capturePreview{placeW: max(w, 50), placeH: max(h, 50)}
	v.prevPhoto = NewPhoto(Data(v.placeholder()))
	v.label = Label(Image(v.prevPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *capturePreview) placeholder() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, v.placeW, v.placeH)))
}

// replace swaps the label's photo, deleting the previous Tk image so
// off-screen pixel data does not accumulate.
func (v *capturePreview) replace(png []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(png))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *capturePreview) UpdatePreview(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	v.replace(images.EncodePNG(img))
}

func (v *capturePreview) Reset() {
	if v.label == nil {
		return
	}
	v.replace(v.placeholder())
}
