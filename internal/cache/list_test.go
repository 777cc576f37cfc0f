package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forward walks head -> tail and checks every back-link on the way.
func forward[K comparable, V any](t *testing.T, l *list[K, V]) []K {
	t.Helper()

	var keys []K
	prev := nilHandle
	for h := l.head; h != nilHandle; h = l.at(h).next {
		require.Equal(t, prev, l.at(h).prev, "back-link of %v", l.at(h).key)
		keys = append(keys, l.at(h).key)
		prev = h
		require.LessOrEqual(t, len(keys), len(l.slots), "cycle in list")
	}
	require.Equal(t, prev, l.tail)
	require.Equal(t, l.len, len(keys))
	return keys
}

func TestList_PushFrontOrder(t *testing.T) {
	l := newList[string, int](0)
	l.pushFront("a", 1)
	l.pushFront("b", 2)
	l.pushFront("c", 3)

	assert.Equal(t, []string{"c", "b", "a"}, forward(t, l))
}

func TestList_UnlinkPositions(t *testing.T) {
	l := newList[string, int](4)
	a := l.pushFront("a", 1)
	b := l.pushFront("b", 2)
	c := l.pushFront("c", 3)

	// Interior.
	l.unlink(b)
	assert.Equal(t, []string{"c", "a"}, forward(t, l))

	// Head.
	l.unlink(c)
	assert.Equal(t, []string{"a"}, forward(t, l))

	// Sole entry clears both ends.
	l.unlink(a)
	assert.Empty(t, forward(t, l))
	assert.Equal(t, nilHandle, l.head)
	assert.Equal(t, nilHandle, l.tail)
}

func TestList_MoveToFrontKeepsHandle(t *testing.T) {
	l := newList[string, int](4)
	a := l.pushFront("a", 1)
	l.pushFront("b", 2)
	l.pushFront("c", 3)
	slots := len(l.slots)

	l.moveToFront(a)
	assert.Equal(t, []string{"a", "c", "b"}, forward(t, l))
	assert.Equal(t, "a", l.at(a).key)
	assert.Equal(t, slots, len(l.slots), "move must not allocate a slot")

	// Already head: no-op.
	l.moveToFront(a)
	assert.Equal(t, []string{"a", "c", "b"}, forward(t, l))
}

func TestList_PopBack(t *testing.T) {
	l := newList[string, int](0)

	_, ok := l.popBack()
	assert.False(t, ok, "empty list has no tail")

	l.pushFront("a", 1)
	l.pushFront("b", 2)

	h, ok := l.popBack()
	require.True(t, ok)
	assert.Equal(t, "a", l.at(h).key, "slot stays readable until released")
	assert.Equal(t, []string{"b"}, forward(t, l))
}

func TestList_ReleaseReusesSlot(t *testing.T) {
	l := newList[string, int](0)
	l.pushFront("a", 1)
	b := l.pushFront("b", 2)

	l.unlink(b)
	l.release(b)
	assert.Equal(t, 0, l.at(b).value, "released slot is zeroed")

	c := l.pushFront("c", 3)
	assert.Equal(t, b, c, "free slot is reused")
	assert.Len(t, l.slots, 2)
	assert.Equal(t, []string{"c", "a"}, forward(t, l))
}

func TestList_Reset(t *testing.T) {
	l := newList[string, int](0)
	h := l.pushFront("a", 1)
	l.unlink(h)
	l.release(h)
	l.pushFront("b", 2)

	l.reset()
	assert.Empty(t, forward(t, l))
	assert.Empty(t, l.free)
	assert.Empty(t, l.slots)
}
