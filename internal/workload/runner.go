package workload

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gocache/internal/cache"
)

// Result summarises one run from the caller's point of view. Cache-side
// counters (evictions, hit rate) come from the cache's own metrics.
type Result struct {
	Ops     int64
	Gets    int64
	Hits    int64
	Elapsed time.Duration
}

// Throughput returns operations per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// Replay runs ops in order. With strict set, a GET that misses stops the run
// with cache.ErrKeyNotFound.
func Replay(ctx context.Context, t Target, ops []Op, strict bool) (Result, error) {
	var res Result
	start := time.Now()

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		hit, err := Apply(t, op)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("op %d (%s %s): %w", i, op.Kind, op.Key, err)
		}
		res.Ops++
		if op.Kind == OpGet {
			res.Gets++
			if hit {
				res.Hits++
			} else if strict {
				res.Elapsed = time.Since(start)
				return res, fmt.Errorf("op %d (GET %s): %w", i, op.Key, cache.ErrKeyNotFound)
			}
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// RunConcurrent starts workers goroutines, each applying opsPerWorker
// operations from its own generator. The first error cancels the others.
func RunConcurrent(ctx context.Context, t Target, workers, opsPerWorker int, newGen func(worker int) *Generator) (Result, error) {
	var ops, gets, hits atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for w := 0; w < workers; w++ {
		gen := newGen(w)
		g.Go(func() error {
			for i := 0; i < opsPerWorker; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				op := gen.Next()
				hit, err := Apply(t, op)
				if err != nil {
					return fmt.Errorf("worker %d: %w", w, err)
				}
				ops.Add(1)
				if op.Kind == OpGet {
					gets.Add(1)
					if hit {
						hits.Add(1)
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()

	return Result{
		Ops:     ops.Load(),
		Gets:    gets.Load(),
		Hits:    hits.Load(),
		Elapsed: time.Since(start),
	}, err
}
