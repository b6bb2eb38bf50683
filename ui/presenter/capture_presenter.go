package presenter

import (
	"github.com/soocke/pixel-stream-go/domain/capture"
)

// CaptureModel provides enabled state access.
type CaptureModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// LifecycleContract narrows what presenter needs from the capture layer.
type LifecycleContract interface {
	Start()
	Stop()
}

// CaptureView updates UI elements affected by capture toggling.
type CaptureView interface {
	PreviewReset()
	SetCapturing(bool)
}

// CapturePresenter owns presentation logic for toggling polling.
type CapturePresenter struct {
	model   CaptureModel
	service LifecycleContract // narrowed from capture.Service
	view    CaptureView
	onStop  func()
}

func NewCapturePresenter(model CaptureModel, service capture.Service, view CaptureView) *CapturePresenter {
	return &CapturePresenter{model: model, service: service, view: view}
}

// OnStop registers a hook run after polling stops, e.g. to reset rates.
func (c *CapturePresenter) OnStop(fn func()) {
	if c != nil {
		c.onStop = fn
	}
}

func (c *CapturePresenter) ready() bool {
	return c != nil && c.model != nil && c.service != nil && c.view != nil
}

// Enable starts the poller. Idempotent.
func (c *CapturePresenter) Enable() {
	if !c.ready() || c.model.Enabled() {
		return
	}
	c.service.Start()
	c.model.SetEnabled(true)
	c.view.SetCapturing(true)
}

// Disable stops the poller and resets the preview. Idempotent.
func (c *CapturePresenter) Disable() {
	if !c.ready() || !c.model.Enabled() {
		return
	}
	c.service.Stop()
	c.model.SetEnabled(false)
	c.view.PreviewReset()
	c.view.SetCapturing(false)
	if c.onStop != nil {
		c.onStop()
	}
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *CapturePresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}
