package cli

import (
	"github.com/rs/zerolog"

	"gocache/internal/cache"
	"gocache/internal/workload"
)

// target is a cache the runners can drive and the reporters can observe.
type target interface {
	workload.Target
	cache.StatsSource
}

// newTarget builds a single-lock cache, or a sharded one when shards > 1.
func newTarget(capacity, shards int, log *zerolog.Logger) (target, error) {
	if shards > 1 {
		s, err := cache.NewSharded[string, string](capacity, shards, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	c, err := cache.New[string, string](cache.Config{Capacity: capacity, Logger: log})
	if err != nil {
		return nil, err
	}
	return c, nil
}
