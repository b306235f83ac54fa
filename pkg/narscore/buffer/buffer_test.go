package buffer

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name string
	prio float64
}

func newTestBuffer(capacity int) *Buffer[entry] {
	return New(capacity,
		func(e entry) string { return e.name },
		func(e entry) float64 { return e.prio },
	)
}

func TestTakeOrder(t *testing.T) {
	b := newTestBuffer(100)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		b.Insert(entry{name: strconv.Itoa(i), prio: rng.Float64()})
		if i%5 == 4 {
			b.Take()
		}
	}

	prev := 2.0
	for b.Len() > 0 {
		item, ok := b.Take()
		require.True(t, ok)
		assert.LessOrEqual(t, item.Priority, prev)
		prev = item.Priority
	}

	_, ok := b.Take()
	assert.False(t, ok)
	_, ok = b.Peek()
	assert.False(t, ok)
}

func TestPeek(t *testing.T) {
	b := newTestBuffer(10)
	b.Insert(entry{"low", 0.1})
	b.Insert(entry{"high", 0.9})
	b.Insert(entry{"mid", 0.5})

	top, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "high", top.Key)
	assert.Equal(t, 3, b.Len())

	mid, ok := b.PeekKey("mid")
	require.True(t, ok)
	assert.Equal(t, 0.5, mid.Priority)
	assert.Equal(t, 3, b.Len())

	_, ok = b.PeekKey("absent")
	assert.False(t, ok)
}

func TestDuplicateKeyRaisesPriority(t *testing.T) {
	b := newTestBuffer(10)
	first, _ := b.Insert(entry{"a", 0.2})
	b.Insert(entry{"b", 0.5})

	again, evicted := b.Insert(entry{"a", 0.9})
	assert.Nil(t, evicted)
	assert.Same(t, first, again)
	assert.Equal(t, 2, b.Len())

	top, _ := b.Peek()
	assert.Equal(t, "a", top.Key)
	assert.Equal(t, 0.9, top.Priority)

	b.Insert(entry{"a", 0.1})
	top, _ = b.Peek()
	assert.Equal(t, 0.9, top.Priority, "a lower priority never demotes")
}

func TestOverflowEvictsLowest(t *testing.T) {
	b := newTestBuffer(3)
	b.Insert(entry{"a", 0.3})
	b.Insert(entry{"b", 0.1})
	b.Insert(entry{"c", 0.5})

	item, evicted := b.Insert(entry{"d", 0.4})
	require.NotNil(t, item)
	require.NotNil(t, evicted)
	assert.Equal(t, "b", evicted.Key)
	assert.Equal(t, 3, b.Len())
	_, ok := b.PeekKey("b")
	assert.False(t, ok, "evicted key must leave the index")

	item, evicted = b.Insert(entry{"e", 0.05})
	assert.Nil(t, item)
	require.NotNil(t, evicted)
	assert.Equal(t, "e", evicted.Key)
	_, ok = b.PeekKey("e")
	assert.False(t, ok)
	assert.Equal(t, 3, b.Len())
}

func TestIndexMatchesQueue(t *testing.T) {
	b := newTestBuffer(16)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0, 1:
			b.Insert(entry{name: strconv.Itoa(rng.Intn(40)), prio: rng.Float64()})
		case 2:
			b.Take()
		}
		require.LessOrEqual(t, b.Len(), b.Capacity())
		require.Len(t, b.byKey, b.Len())
		for _, it := range b.Items() {
			indexed, ok := b.PeekKey(it.Key)
			require.True(t, ok)
			require.Same(t, it, indexed)
		}
	}
}
