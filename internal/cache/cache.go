package cache

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Config controls cache capacity and diagnostics.
//
//   - Capacity 0 means "retain nothing": every Put is evicted immediately.
//   - Capacity < 0 is rejected with ErrInvalidCapacity.
//   - A nil Logger disables logging.
type Config struct {
	Capacity int
	Logger   *zerolog.Logger
}

// Cache is a concurrency-safe wrapper around one LRU engine.
//
// Every operation holds the lock for exactly one engine call. Get takes the
// exclusive lock even though it reads, because a hit moves the entry to the
// front of the recency list.
//
// Poisoning:
// If an engine call panics while the lock is held (for example a key whose
// dynamic type is not hashable), the engine may be half-updated. The panic is
// recovered, the cache is marked poisoned, and that call plus every later
// Get/Put/Remove/Clear returns a *LockError instead of touching the engine.
type Cache[K comparable, V any] struct {
	mu  sync.RWMutex
	lru *LRU[K, V]

	poisoned string
	log      zerolog.Logger
}

// New constructs a cache with cfg.Capacity entries.
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	lru, err := NewLRU[K, V](cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("new cache: %w", err)
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Cache[K, V]{
		lru: lru,
		log: log.With().Str("component", "cache").Logger(),
	}, nil
}

// Get reads a key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (value V, ok bool, err error) {
	err = c.exclusive("get", func() {
		value, ok = c.lru.Get(key)
	})
	return value, ok, err
}

// Put writes/overwrites a key and returns the value it replaced, if any.
//
// Complexity:
//   - O(1) to locate/insert
//   - O(1) eviction of at most one entry
func (c *Cache[K, V]) Put(key K, value V) (prev V, replaced bool, err error) {
	err = c.exclusive("put", func() {
		prev, replaced = c.lru.Put(key, value)
	})
	return prev, replaced, err
}

// Remove deletes a key if present and returns its value.
func (c *Cache[K, V]) Remove(key K) (value V, ok bool, err error) {
	err = c.exclusive("remove", func() {
		value, ok = c.lru.Remove(key)
	})
	return value, ok, err
}

// Clear drops every entry and zeroes the metrics.
func (c *Cache[K, V]) Clear() error {
	return c.exclusive("clear", c.lru.Clear)
}

// Peek reads a key without changing recency or metrics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Peek(key)
}

func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Contains(key)
}

// Len returns the number of currently stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// Cap returns the fixed capacity.
func (c *Cache[K, V]) Cap() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Cap()
}

// Metrics returns a snapshot of the hit/miss/eviction counters.
func (c *Cache[K, V]) Metrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Metrics()
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the demo command. A poisoned cache returns
// nil rather than walking links that may be torn.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.poisoned != "" {
		return nil
	}
	return c.lru.Keys()
}

// exclusive runs fn under the write lock, converting a panic into a poisoned
// cache. The error is logged only after the lock is released.
func (c *Cache[K, V]) exclusive(op string, fn func()) error {
	c.mu.Lock()
	err := c.runLocked(op, fn)
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("cache operation refused")
	}
	return err
}

func (c *Cache[K, V]) runLocked(op string, fn func()) (err error) {
	if c.poisoned != "" {
		return &LockError{Detail: c.poisoned}
	}
	defer func() {
		if r := recover(); r != nil {
			c.poisoned = fmt.Sprintf("%s panicked while holding the lock: %v", op, r)
			err = &LockError{Detail: c.poisoned}
		}
	}()
	fn()
	return nil
}
