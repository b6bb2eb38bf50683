package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine and stack usage next to the number of native capture
// buffers still held, to tell Go-side growth from leaked OS surfaces.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/soocke/pixel-stream-go/domain/capture"
)

// StartRuntimeLogger logs runtime and capture buffer counters every
// interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("runtime",
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Int64("capture_buffers_outstanding", capture.OutstandingBuffers()),
			)
		}
	}()
}
