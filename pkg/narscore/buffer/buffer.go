// Package buffer is a bounded max-priority memory with lookup by key.
package buffer

import (
	"container/heap"
)

// Item wraps a payload with its priority and lookup key.
type Item[T any] struct {
	Key      string
	Priority float64
	Payload  T

	index int
}

// Buffer is a max-priority queue of at most capacity items. Items are also
// indexed by key; the index always holds exactly the items in the queue.
//
// Inserting a key already present keeps the existing item and raises its
// priority if the new one is higher. Inserting into a full buffer evicts
// the lowest-priority item, which may be the newcomer itself.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	capacity int
	key      func(T) string
	priority func(T) float64
	items    queue[T]
	byKey    map[string]*Item[T]
}

// New creates a buffer. key and priority derive an item's key and initial
// priority from its payload.
func New[T any](capacity int, key func(T) string, priority func(T) float64) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{
		capacity: capacity,
		key:      key,
		priority: priority,
		byKey:    make(map[string]*Item[T]),
	}
}

// Len returns the number of items.
func (b *Buffer[T]) Len() int { return len(b.items) }

// Capacity returns the maximum number of items.
func (b *Buffer[T]) Capacity() int { return b.capacity }

// Insert adds payload and returns its item together with the item evicted to
// make room, if any. When the newcomer ranks lowest it is not stored: item is
// nil and evicted wraps the payload.
func (b *Buffer[T]) Insert(payload T) (item *Item[T], evicted *Item[T]) {
	k := b.key(payload)
	p := b.priority(payload)

	if existing, ok := b.byKey[k]; ok {
		if p > existing.Priority {
			existing.Priority = p
			heap.Fix(&b.items, existing.index)
		}
		return existing, nil
	}

	if len(b.items) >= b.capacity {
		lowest := b.lowest()
		if lowest.Priority >= p {
			// the newcomer would be the one evicted
			return nil, &Item[T]{Key: k, Priority: p, Payload: payload, index: -1}
		}
		heap.Remove(&b.items, lowest.index)
		delete(b.byKey, lowest.Key)
		evicted = lowest
	}

	item = &Item[T]{Key: k, Priority: p, Payload: payload}
	heap.Push(&b.items, item)
	b.byKey[k] = item
	return item, evicted
}

// Take removes and returns the highest-priority item.
func (b *Buffer[T]) Take() (*Item[T], bool) {
	if len(b.items) == 0 {
		return nil, false
	}
	item := heap.Pop(&b.items).(*Item[T])
	delete(b.byKey, item.Key)
	return item, true
}

// Peek returns the highest-priority item without removing it.
func (b *Buffer[T]) Peek() (*Item[T], bool) {
	if len(b.items) == 0 {
		return nil, false
	}
	return b.items[0], true
}

// PeekKey returns the item stored under key without removing it.
func (b *Buffer[T]) PeekKey(key string) (*Item[T], bool) {
	item, ok := b.byKey[key]
	return item, ok
}

// Items returns the items in no particular order.
func (b *Buffer[T]) Items() []*Item[T] {
	out := make([]*Item[T], len(b.items))
	copy(out, b.items)
	return out
}

// lowest scans the leaves of the heap, where the minimum must be.
func (b *Buffer[T]) lowest() *Item[T] {
	n := len(b.items)
	low := b.items[n/2]
	for _, it := range b.items[n/2:] {
		if it.Priority < low.Priority {
			low = it
		}
	}
	return low
}

// queue implements heap.Interface as a max-heap on Priority.
type queue[T any] []*Item[T]

func (q queue[T]) Len() int           { return len(q) }
func (q queue[T]) Less(i, j int) bool { return q[i].Priority > q[j].Priority }

func (q queue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue[T]) Push(x any) {
	item := x.(*Item[T])
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *queue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
