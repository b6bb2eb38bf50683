package view

import (
	"image"
	"log/slog"

	"github.com/soocke/pixel-stream-go/config"
	"github.com/soocke/pixel-stream-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats       StatsBar
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	toggleBtn *TButtonWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions;
// onApply receives the saved config.
func (rv *RootView) Build(onToggleCapture, onExit func(), onApply func(config.Config)) {
	if rv == nil {
		return
	}
	// Rows 0-1: source, rates and totals; buttons on the right
	rv.Stats = NewStatsBar(0, 0)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(3), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.toggleBtn = TButton(Txt("Start Capture"), Style(theme.StylePrimaryButton), Command(onToggleCapture))
	Grid(rv.toggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, onApply)
	endRow := rv.ConfigPanel.Build(2)

	rv.CapturePrev = NewCapturePreview(endRow, rv.cfg.PreviewWidth, rv.cfg.PreviewHeight)
}

// UpdatePreview proxies to the capture preview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdatePreview(img)
	}
}

// SetStats proxies to the stats bar.
func (rv *RootView) SetStats(rate, throughput, totals string) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetStats(rate, throughput, totals)
	}
}

// SetSource shows which display and backend are captured.
func (rv *RootView) SetSource(text string) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetSource(text)
	}
}

// --- CapturePresenter view contract methods ---

// PreviewReset clears the capture preview.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// SetCapturing flips the toggle label and locks the config form while
// polling runs.
func (rv *RootView) SetCapturing(on bool) {
	if rv == nil {
		return
	}
	if rv.toggleBtn != nil {
		label := "Start Capture"
		if on {
			label = "Stop Capture"
		}
		rv.toggleBtn.Configure(Txt(label))
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(!on)
	}
}
