package cache

import "sync"

// Store is a plain, non-evicting key/value map guarded by an RWMutex.
//
// It shares nothing with LRU. When limit > 0, inserting a new key into a full
// store fails with ErrCapacityExceeded instead of evicting; overwriting an
// existing key always succeeds.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	limit int
}

// NewStore creates a store. limit <= 0 means unbounded.
func NewStore[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		items: make(map[K]V),
		limit: limit,
	}
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Lookup is Get for callers that want an error: a missing key returns
// ErrKeyNotFound.
func (s *Store[K, V]) Lookup(key K) (V, error) {
	v, ok := s.Get(key)
	if !ok {
		return v, ErrKeyNotFound
	}
	return v, nil
}

func (s *Store[K, V]) Insert(key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok && s.limit > 0 && len(s.items) >= s.limit {
		return ErrCapacityExceeded
	}
	s.items[key] = value
	return nil
}

func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
