package cache

// LRU is a fixed-capacity cache that evicts the least recently used entry.
//
// A map gives O(1) key lookup, and a doubly linked list stored in a slot
// arena maintains recency ordering. Both halves are only ever changed together
// by the helpers at the bottom of this file.
//
// LRU is not safe for concurrent use; share it through Cache.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]handle
	order    *list[K, V]
	metrics  Metrics
}

// NewLRU creates an engine holding at most capacity entries.
//
// Capacity 0 is allowed: every Put evicts the entry it just inserted, so the
// cache never retains anything. Negative capacity returns ErrInvalidCapacity.
func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	// Cap the preallocation; huge capacities grow on demand.
	hint := min(capacity+1, 1024)
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]handle, hint),
		order:    newList[K, V](hint),
	}, nil
}

// Get returns the value for key and marks it most recently used.
// Every call counts as one request in the metrics.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	h, ok := c.items[key]
	if !ok {
		c.metrics.RecordMiss()
		var zero V
		return zero, false
	}
	c.metrics.RecordHit()
	c.order.moveToFront(h)
	return c.order.at(h).value, true
}

// Peek returns the value for key without touching recency or metrics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	h, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.order.at(h).value, true
}

// Contains reports whether key is cached, without touching recency or metrics.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Put writes key and marks it most recently used.
//
// For an existing key the previous value is returned with true. A new key
// returns the zero value and false; if the insert pushes Len over Cap, the
// least recently used entry is evicted.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	if h, ok := c.items[key]; ok {
		s := c.order.at(h)
		prev := s.value
		s.value = value
		c.order.moveToFront(h)
		return prev, true
	}

	c.add(key, value)
	if c.order.len > c.capacity {
		c.evictOldest()
	}
	var zero V
	return zero, false
}

// Remove deletes key from any position and returns its value.
// Removal is not an eviction.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	h, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.detach(key, h), true
}

// Clear drops every entry and resets the metrics to zero.
func (c *LRU[K, V]) Clear() {
	clear(c.items)
	c.order.reset()
	c.metrics.Reset()
}

// Oldest returns the entry that the next eviction would remove.
func (c *LRU[K, V]) Oldest() (K, V, bool) {
	if c.order.tail == nilHandle {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	s := c.order.at(c.order.tail)
	return s.key, s.value, true
}

// Keys returns keys in MRU -> LRU order.
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, c.order.len)
	for h := c.order.head; h != nilHandle; h = c.order.at(h).next {
		out = append(out, c.order.at(h).key)
	}
	return out
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return c.order.len }

// Cap returns the capacity fixed at construction.
func (c *LRU[K, V]) Cap() int { return c.capacity }

func (c *LRU[K, V]) IsEmpty() bool { return c.order.len == 0 }

// IsFull reports Len() >= Cap(). A capacity-0 engine is always full.
func (c *LRU[K, V]) IsFull() bool { return c.order.len >= c.capacity }

// Metrics returns a copy of the counters.
func (c *LRU[K, V]) Metrics() Metrics { return c.metrics }

// add links a new entry at the head and indexes it.
func (c *LRU[K, V]) add(key K, value V) {
	c.items[key] = c.order.pushFront(key, value)
}

// detach unindexes and unlinks h, releases its slot and returns the value.
func (c *LRU[K, V]) detach(key K, h handle) V {
	value := c.order.at(h).value
	delete(c.items, key)
	c.order.unlink(h)
	c.order.release(h)
	return value
}

// evictOldest removes the tail entry and records the eviction.
func (c *LRU[K, V]) evictOldest() {
	h, ok := c.order.popBack()
	if !ok {
		return
	}
	delete(c.items, c.order.at(h).key)
	c.order.release(h)
	c.metrics.RecordEviction()
}
