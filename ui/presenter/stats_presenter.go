package presenter

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/pixel-stream-go/domain/capture"
	"github.com/soocke/pixel-stream-go/ui/model"
)

// StatsSource exposes cumulative poller counters.
type StatsSource interface {
	Stats() capture.CaptureStats
}

// StatsView displays formatted throughput figures.
type StatsView interface {
	SetStats(rate, throughput, totals string)
}

// StatsPresenter samples poller stats into the throughput model and
// formats them for the view.
type StatsPresenter struct {
	src   StatsSource
	model *model.ThroughputModel
	view  StatsView
}

func NewStatsPresenter(src StatsSource, m *model.ThroughputModel, view StatsView) *StatsPresenter {
	return &StatsPresenter{src: src, model: m, view: view}
}

// Tick samples at now and pushes values to the view.
func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.model == nil || p.view == nil {
		return
	}
	stats := p.src.Stats()
	p.model.OnSample(stats, now)
	p.view.SetStats(FormatStats(p.model, stats))
}

// FormatStats renders the label texts for one sample.
func FormatStats(m *model.ThroughputModel, stats capture.CaptureStats) (rate, throughput, totals string) {
	fps, bps, pps := m.Values()
	rate = fmt.Sprintf("%.1f fps (%s polls/s)", fps, humanize.Comma(int64(pps+0.5)))
	throughput = humanize.Bytes(uint64(bps)) + "/s"
	totals = fmt.Sprintf("frames %s, skipped %s, convert %s",
		humanize.Comma(int64(stats.Ready)),
		humanize.Comma(int64(stats.Skipped)),
		stats.AvgConvert.Round(time.Microsecond),
	)
	return rate, throughput, totals
}
