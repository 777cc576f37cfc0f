package cache

import (
	"errors"
	"fmt"
	"hash/maphash"

	"github.com/rs/zerolog"
)

// Sharded spreads keys over several independently locked caches so that
// unrelated keys do not contend for one mutex.
//
// Recency is tracked per shard: an eviction removes the least recently used
// entry of the shard the new key hashes to, not of the whole cache.
type Sharded[K comparable, V any] struct {
	seed   maphash.Seed
	shards []*Cache[K, V]
}

// NewSharded splits capacity across n shards. The remainder goes to the first
// shards, so Cap() always equals capacity. When capacity is positive but
// smaller than n, the shard count is reduced to capacity.
func NewSharded[K comparable, V any](capacity, n int, logger *zerolog.Logger) (*Sharded[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("new sharded cache: %w", ErrInvalidCapacity)
	}
	if n < 1 {
		return nil, fmt.Errorf("new sharded cache: shard count %d must be positive", n)
	}
	if capacity > 0 && n > capacity {
		n = capacity
	}

	s := &Sharded[K, V]{
		seed:   maphash.MakeSeed(),
		shards: make([]*Cache[K, V], n),
	}
	per, rem := capacity/n, capacity%n
	for i := range s.shards {
		size := per
		if i < rem {
			size++
		}
		var log *zerolog.Logger
		if logger != nil {
			l := logger.With().Int("shard", i).Logger()
			log = &l
		}
		c, err := New[K, V](Config{Capacity: size, Logger: log})
		if err != nil {
			return nil, fmt.Errorf("new sharded cache: shard %d: %w", i, err)
		}
		s.shards[i] = c
	}
	return s, nil
}

func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	return s.shards[maphash.Comparable(s.seed, key)%uint64(len(s.shards))]
}

func (s *Sharded[K, V]) Get(key K) (V, bool, error) {
	return s.shard(key).Get(key)
}

func (s *Sharded[K, V]) Put(key K, value V) (V, bool, error) {
	return s.shard(key).Put(key, value)
}

func (s *Sharded[K, V]) Remove(key K) (V, bool, error) {
	return s.shard(key).Remove(key)
}

func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Clear clears every shard. Shards are cleared one at a time, so a concurrent
// reader may observe some shards already empty.
func (s *Sharded[K, V]) Clear() error {
	var errs []error
	for i, c := range s.shards {
		if err := c.Clear(); err != nil {
			errs = append(errs, fmt.Errorf("shard %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, c := range s.shards {
		n += c.Len()
	}
	return n
}

func (s *Sharded[K, V]) Cap() int {
	n := 0
	for _, c := range s.shards {
		n += c.Cap()
	}
	return n
}

// Metrics sums the counters of all shards.
func (s *Sharded[K, V]) Metrics() Metrics {
	var m Metrics
	for _, c := range s.shards {
		m = m.Add(c.Metrics())
	}
	return m
}

// Shards returns the number of shards actually in use.
func (s *Sharded[K, V]) Shards() int {
	return len(s.shards)
}
