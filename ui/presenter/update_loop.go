package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Stats    *StatsPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(stats *StatsPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Stats: stats, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Stats != nil {
		l.Stats.Tick(time.Now())
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
