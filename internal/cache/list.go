package cache

// handle addresses a slot in the arena. nilHandle marks an absent link.
type handle int

const nilHandle handle = -1

// slot is one cached entry plus its position in the recency order.
// We keep the key here because eviction starts from the tail slot and must
// remove that key from the index.
type slot[K comparable, V any] struct {
	key   K
	value V
	prev  handle // towards head (more recent)
	next  handle // towards tail (less recent)
}

// list is a doubly linked recency list stored in a slot arena.
//
// Links are integer handles into slots instead of pointers, so removing an
// entry never leaves a dangling reference: a released slot is zeroed and put
// on the free list, and the next insert reuses it.
//
// Head = most recently used (MRU), tail = least recently used (LRU).
// list is not safe for concurrent use.
type list[K comparable, V any] struct {
	slots []slot[K, V]
	free  []handle
	head  handle
	tail  handle
	len   int
}

func newList[K comparable, V any](sizeHint int) *list[K, V] {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &list[K, V]{
		slots: make([]slot[K, V], 0, sizeHint),
		head:  nilHandle,
		tail:  nilHandle,
	}
}

// pushFront stores key/value in a free slot and links it as the new head.
func (l *list[K, V]) pushFront(key K, value V) handle {
	var h handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[h] = slot[K, V]{key: key, value: value}
	} else {
		h = handle(len(l.slots))
		l.slots = append(l.slots, slot[K, V]{key: key, value: value})
	}
	l.linkFront(h)
	l.len++
	return h
}

// linkFront links an unlinked slot in front of the current head.
func (l *list[K, V]) linkFront(h handle) {
	s := &l.slots[h]
	s.prev = nilHandle
	s.next = l.head
	if l.head != nilHandle {
		l.slots[l.head].prev = h
	} else {
		l.tail = h
	}
	l.head = h
}

// unlink detaches h from its neighbours without releasing the slot.
func (l *list[K, V]) unlink(h handle) {
	s := &l.slots[h]
	if s.prev != nilHandle {
		l.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilHandle {
		l.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	s.prev, s.next = nilHandle, nilHandle
	l.len--
}

// moveToFront relinks h as head in place; the slot keeps its handle.
func (l *list[K, V]) moveToFront(h handle) {
	if l.head == h {
		return
	}
	l.unlink(h)
	l.linkFront(h)
	l.len++
}

// popBack unlinks the tail and returns its handle. The slot stays allocated
// so the caller can still read its key; call release afterwards.
func (l *list[K, V]) popBack() (handle, bool) {
	h := l.tail
	if h == nilHandle {
		return nilHandle, false
	}
	l.unlink(h)
	return h, true
}

// release zeroes an unlinked slot and returns it to the free list.
func (l *list[K, V]) release(h handle) {
	l.slots[h] = slot[K, V]{prev: nilHandle, next: nilHandle}
	l.free = append(l.free, h)
}

func (l *list[K, V]) at(h handle) *slot[K, V] {
	return &l.slots[h]
}

// reset drops every slot. The backing array is reallocated so stale keys and
// values become garbage immediately.
func (l *list[K, V]) reset() {
	l.slots = make([]slot[K, V], 0, cap(l.slots))
	l.free = l.free[:0]
	l.head, l.tail = nilHandle, nilHandle
	l.len = 0
}
