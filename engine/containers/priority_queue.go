package containers

import "container/heap"

// PriorityQueue orders its elements with a user supplied less function. Poll
// always returns the smallest element. Elements that compare equal come out in
// insertion order.
type PriorityQueue[T any] struct {
	h *entries[T]
}

type entry[T any] struct {
	value T
	seq   uint64
}

type entries[T any] struct {
	items []entry[T]
	less  func(a, b T) bool
	seq   uint64
}

func (e *entries[T]) Len() int { return len(e.items) }

func (e *entries[T]) Less(i, j int) bool {
	a, b := e.items[i], e.items[j]
	if e.less(a.value, b.value) {
		return true
	}
	if e.less(b.value, a.value) {
		return false
	}
	return a.seq < b.seq
}

func (e *entries[T]) Swap(i, j int) { e.items[i], e.items[j] = e.items[j], e.items[i] }

func (e *entries[T]) Push(x any) { e.items = append(e.items, x.(entry[T])) }

func (e *entries[T]) Pop() any {
	old := e.items
	n := len(old)
	it := old[n-1]
	old[n-1] = entry[T]{}
	e.items = old[:n-1]
	return it
}

func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		h: &entries[T]{less: less},
	}
}

// Add inserts value into the queue.
func (pq *PriorityQueue[T]) Add(value T) {
	pq.h.seq++
	heap.Push(pq.h, entry[T]{value: value, seq: pq.h.seq})
}

// Poll removes and returns the smallest element. The boolean is false when the
// queue is empty.
func (pq *PriorityQueue[T]) Poll() (T, bool) {
	if pq.h.Len() == 0 {
		var zero T
		return zero, false
	}
	it := heap.Pop(pq.h).(entry[T])
	return it.value, true
}

// Peek returns the smallest element without removing it.
func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if pq.h.Len() == 0 {
		var zero T
		return zero, false
	}
	return pq.h.items[0].value, true
}

// Drain polls every element in order and hands it to fn. The queue is empty
// afterwards.
func (pq *PriorityQueue[T]) Drain(fn func(T)) {
	for pq.h.Len() > 0 {
		it := heap.Pop(pq.h).(entry[T])
		fn(it.value)
	}
}

func (pq *PriorityQueue[T]) Clear() {
	clear(pq.h.items)
	pq.h.items = pq.h.items[:0]
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.h.Len()
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.h.Len() == 0
}
