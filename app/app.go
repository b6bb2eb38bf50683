package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-stream-go/config"
	"github.com/soocke/pixel-stream-go/debug"
	"github.com/soocke/pixel-stream-go/domain/display"
	"github.com/soocke/pixel-stream-go/ui/presenter"
	"github.com/soocke/pixel-stream-go/ui/theme"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	c       *AppContainer
	afterID string
	cancel  context.CancelFunc

	// set by the display watcher goroutine, consumed on the Tk thread
	displaysChanged atomic.Bool
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, wires presenters and blocks in the Tk event loop.
func (a *app) Start() {
	c := a.c
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	theme.Apply(false)
	c.RootView.Build(a.toggleCapture, a.exitHandler, a.applyConfig)
	c.RootView.SetCapturing(false)
	c.RootView.SetSource(c.Capture.Source())

	c.CapturePresenter = presenter.NewCapturePresenter(c.Capture, c.Poller, c.RootView)
	c.CapturePresenter.OnStop(c.Throughput.Reset)
	c.StatsPresenter = presenter.NewStatsPresenter(c.Poller, c.Throughput, c.RootView)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Capture.Enabled, c.Poller, c.RootView, c.Config.PreviewWidth, c.Config.PreviewHeight)
	c.Loop = presenter.NewLoop(c.StatsPresenter, c.PreviewPresenter, a.scheduleUpdate)
	c.Watcher = presenter.NewDisplayWatcher(display.All, func([]display.Display) {
		a.displaysChanged.Store(true)
	}, c.Logger, time.Second)
	c.Watcher.Start()

	if c.Config.Debug {
		debug.StartRuntimeLogger(ctx, 5*time.Second, c.Logger)
		debug.StartMemLogger(ctx, 5*time.Second, c.Logger)
	}

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	if a.displaysChanged.Swap(false) {
		a.c.Reopen(*a.c.Config)
		a.c.RootView.SetSource(a.c.Capture.Source())
	}
	a.c.Loop.Tick()
}

func (a *app) toggleCapture() { a.c.CapturePresenter.Toggle() }

// applyConfig reopens the backend with freshly saved settings. The config
// form is only editable while polling is stopped.
func (a *app) applyConfig(cfg config.Config) {
	a.c.Poller.SetInterval(time.Duration(cfg.PollIntervalMS) * time.Millisecond)
	a.c.Reopen(cfg)
	a.c.RootView.SetSource(a.c.Capture.Source())
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.shutdown()
	Destroy(App)
}

func (a *app) shutdown() {
	c := a.c
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	c.Poller.Stop()
	c.Source.Close()
	if a.cancel != nil {
		a.cancel()
	}
	c.Logger.Info("app.exit", "stats", fmt.Sprintf("%+v", c.Poller.Stats()))
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
