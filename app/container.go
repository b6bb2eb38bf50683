package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/pixel-stream-go/config"
	"github.com/soocke/pixel-stream-go/domain/capture"
	"github.com/soocke/pixel-stream-go/domain/display"
	"github.com/soocke/pixel-stream-go/ui/model"
	"github.com/soocke/pixel-stream-go/ui/presenter"
	"github.com/soocke/pixel-stream-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Permission *model.PermissionGate

	Capture    *model.CaptureModel
	Throughput *model.ThroughputModel
	Source     *capture.Switchable
	Poller     *capture.Poller
	RootView   *view.RootView

	// Presenters
	CapturePresenter *presenter.CapturePresenter
	StatsPresenter   *presenter.StatsPresenter
	PreviewPresenter *presenter.PreviewPresenter
	Loop             *presenter.Loop
	Watcher          *presenter.DisplayWatcher
}

// BuildContainer constructs all components and opens the configured
// backend. A backend that cannot be opened is logged and leaves the
// source empty; the window still comes up.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Permission = model.NewPermissionGate(capture.HasPermission, capture.RequestPermission)
	c.Capture = &model.CaptureModel{}
	c.Throughput = model.NewThroughputModel()
	c.Source = capture.NewSwitchable(nil)
	c.Reopen(*cfg)
	c.Poller = capture.NewPoller(c.Source, time.Duration(cfg.PollIntervalMS)*time.Millisecond, logger)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	// Presenters wired after the view is built (see app.Start).
	return c
}

// Reopen replaces the backend according to cfg. The poller keeps running
// across the swap.
func (c *AppContainer) Reopen(cfg config.Config) {
	next, desc, err := openCapture(cfg, c.Permission, c.Logger)
	if err != nil {
		c.Logger.Error("capture unavailable", "error", err)
		desc = "<" + err.Error() + ">"
	}
	c.Source.Swap(next)
	c.Capture.SetSource(desc)
}

func openCapture(cfg config.Config, perm *model.PermissionGate, logger *slog.Logger) (capture.Capture, string, error) {
	if !perm.Allowed() {
		logger.Warn("screen recording permission not granted; frames may be blank")
	}
	displays, err := display.All()
	if err != nil {
		return nil, "", err
	}
	d, err := display.Select(displays, cfg.DisplayIndex)
	if err != nil {
		return nil, "", err
	}
	kind, err := capture.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, "", err
	}
	opts := capture.NewOptions(d).
		WithCursor(cfg.Cursor).
		WithFrameRate(cfg.FrameRate).
		WithQueueDepth(cfg.QueueDepth)
	c, err := capture.OpenBackend(kind, opts, logger)
	if err != nil {
		return nil, "", err
	}
	desc := fmt.Sprintf("%s %dx%d", d.Kind(), d.Width(), d.Height())
	return c, desc, nil
}
