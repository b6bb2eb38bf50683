package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs resident set size along with Go heap stats; a rising RSS with a flat
// heap points at native memory (display surfaces, GDI bitmaps).

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

// StartMemLogger launches a goroutine that logs memory stats every interval
// until ctx is done. It is best-effort; failures to query RSS are logged
// once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		logger.Warn("memlog: process handle unavailable", slog.String("err", err.Error()))
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, cpu := uint64(0), 0.0
			if proc != nil {
				if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
					rss = mi.RSS
				} else if !rssErrLogged {
					logger.Warn("memlog: MemoryInfo failed", slog.String("err", err.Error()))
					rssErrLogged = true
				}
				cpu, _ = proc.PercentWithContext(ctx, 0)
			}
			logger.Info("memstats",
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("next_gc", ms.NextGC),
				slog.Uint64("rss", rss),
				slog.String("rss_human", humanize.IBytes(rss)),
				slog.Float64("cpu_percent", cpu),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}
