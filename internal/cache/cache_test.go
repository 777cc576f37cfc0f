package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache[K comparable, V any](t *testing.T, capacity int) *Cache[K, V] {
	t.Helper()
	c, err := New[K, V](Config{Capacity: capacity})
	require.NoError(t, err)
	return c
}

func TestCache_InvalidCapacity(t *testing.T) {
	_, err := New[string, int](Config{Capacity: -5})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCache_LRUEviction(t *testing.T) {
	c := newTestCache[int, string](t, 2)

	_, _, err := c.Put(1, "a")
	require.NoError(t, err)
	_, _, err = c.Put(2, "b")
	require.NoError(t, err)

	// Touch 1 so 2 becomes LRU.
	_, ok, err := c.Get(1)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = c.Put(3, "c")
	require.NoError(t, err)

	_, ok, _ = c.Get(2)
	assert.False(t, ok, "2 should have been evicted")
	_, ok, _ = c.Get(1)
	assert.True(t, ok)
	_, ok, _ = c.Get(3)
	assert.True(t, ok)

	assert.Equal(t, []int{3, 1}, c.Keys())
}

func TestCache_PutReturnsPrevious(t *testing.T) {
	c := newTestCache[int, string](t, 2)

	_, replaced, err := c.Put(1, "one")
	require.NoError(t, err)
	assert.False(t, replaced)

	prev, replaced, err := c.Put(1, "ONE")
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, "one", prev)
	assert.Equal(t, 1, c.Len())
}

func TestCache_RemoveAndClear(t *testing.T) {
	c := newTestCache[string, int](t, 3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Get("zzz")

	v, ok, err := c.Remove("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.Len())

	_, ok, err = c.Remove("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 3, c.Cap())
	assert.Equal(t, Metrics{}, c.Metrics())
	assert.False(t, c.Contains("b"))
}

func TestCache_PeekDoesNotCount(t *testing.T) {
	c := newTestCache[string, int](t, 1)
	c.Put("a", 1)

	v, ok := c.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, c.Metrics().TotalRequests)
}

func TestCache_ZeroCapacityNeverRetains(t *testing.T) {
	c := newTestCache[string, int](t, 0)

	for i := 0; i < 10; i++ {
		_, _, err := c.Put(fmt.Sprint(i), i)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(10), c.Metrics().Evictions)
}

func TestCache_PoisonedAfterPanic(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c, err := New[any, int](Config{Capacity: 4, Logger: &log})
	require.NoError(t, err)

	_, _, err = c.Put("ok", 1)
	require.NoError(t, err)

	// Slices are not hashable; the map access panics under the lock.
	_, _, err = c.Put([]int{1}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLock)

	var lockErr *LockError
	require.ErrorAs(t, err, &lockErr)
	assert.Contains(t, lockErr.Detail, "put")

	// Every later operation reports the poisoned lock instead of deadlocking.
	_, _, err = c.Get("ok")
	assert.ErrorIs(t, err, ErrLock)
	_, _, err = c.Put("other", 3)
	assert.ErrorIs(t, err, ErrLock)
	_, _, err = c.Remove("ok")
	assert.ErrorIs(t, err, ErrLock)
	assert.ErrorIs(t, c.Clear(), ErrLock)
	assert.Nil(t, c.Keys())

	assert.Contains(t, buf.String(), "cache operation refused")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	const (
		capacity = 64
		workers  = 16
		perWork  = 1000
	)
	c := newTestCache[int, int](t, capacity)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				k := (w*perWork + i) % 200
				if i%3 == 0 {
					_, _, err := c.Get(k)
					assert.NoError(t, err)
					continue
				}
				_, _, err := c.Put(k, i)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), c.Cap())
	assert.Equal(t, capacity, c.Len(), "200 distinct keys must fill the cache")

	m := c.Metrics()
	assert.Equal(t, m.Hits+m.Misses, m.TotalRequests)
	assert.Equal(t, uint64(workers*((perWork+2)/3)), m.TotalRequests)
	assert.Len(t, c.Keys(), c.Len())
}

func TestCache_ConcurrentDistinctKeysBelowCapacity(t *testing.T) {
	c := newTestCache[string, int](t, 1000)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Put(fmt.Sprintf("%d-%d", w, i), i)
			}
			// Remove the first ten of our own keys.
			for i := 0; i < 10; i++ {
				c.Remove(fmt.Sprintf("%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8*90, c.Len())
	assert.Zero(t, c.Metrics().Evictions)
}
