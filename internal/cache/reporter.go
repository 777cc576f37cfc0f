package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ReporterConfig controls periodic metrics logging.
//
// Interval <= 0 disables the background loop; Report can still be called by hand.
type ReporterConfig struct {
	Interval time.Duration
	Logger   zerolog.Logger
}

// Reporter logs a metrics snapshot of a cache on every tick.
//
// Ownership model:
// Reporter owns its goroutine. Call Close to stop it.
type Reporter struct {
	src StatsSource
	log zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewReporter starts the report loop when cfg.Interval > 0.
func NewReporter(src StatsSource, cfg ReporterConfig) *Reporter {
	ctx, cancel := context.WithCancel(context.Background())

	r := &Reporter{
		src:    src,
		log:    cfg.Logger.With().Str("component", "reporter").Logger(),
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.Interval > 0 {
		r.wg.Add(1)
		go r.loop(cfg.Interval)
	}
	return r
}

// Report logs one snapshot immediately.
func (r *Reporter) Report() {
	m := r.src.Metrics()
	r.log.Info().
		Uint64("hits", m.Hits).
		Uint64("misses", m.Misses).
		Uint64("evictions", m.Evictions).
		Uint64("requests", m.TotalRequests).
		Float64("hit_rate", m.HitRate()).
		Int("size", r.src.Len()).
		Int("capacity", r.src.Cap()).
		Msg("cache metrics")
}

// Close stops the loop and waits for it. Close is safe to call multiple times.
func (r *Reporter) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	return nil
}

func (r *Reporter) loop(every time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.Report()
		}
	}
}
