// Package cache implements a single-process, in-memory key–value cache with
// least-recently-used eviction.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + doubly linked list)
//   - Provide O(1) Get/Put/Remove with the list stored in a slot arena, so
//     links are integer handles rather than pointers
//   - Keep index and list consistent by changing them only together
//   - Offer a concurrency-safe wrapper (RWMutex) that reports a poisoned lock
//     instead of continuing on a torn engine
//   - Track hits, misses and evictions, and own the goroutine that reports them
package cache
