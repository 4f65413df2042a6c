// Package pqutil exposes a generic priority queue built on top of 'container/heap'.
package pqutil

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// PriorityQueue implements a basic priority queue which accepts a generic payload with an ordered priority.
//
// NOTE: The 'PriorityQueue' is not thread safe and should be wrapped in a lock when shared between goroutines.
type PriorityQueue[P constraints.Ordered, T any] struct {
	inner pq[P, T]
}

// NewPriorityQueue creates a new priority queue where the underlying capacity is set to the given value, items are
// dequeued highest priority first.
//
// NOTE: The 'PriorityQueue' capacity has the same behavior as a slices capacity meaning it may grow beyond the given
// capacity, the capacity is there for performance optimizations.
func NewPriorityQueue[P constraints.Ordered, T any](capacity int) *PriorityQueue[P, T] {
	return NewPriorityQueueWithOrder[P, T](capacity, OrderMaxFirst)
}

// NewPriorityQueueWithOrder creates a new priority queue which dequeues items in the given order.
func NewPriorityQueueWithOrder[P constraints.Ordered, T any](capacity int, order Order) *PriorityQueue[P, T] {
	return &PriorityQueue[P, T]{inner: pq[P, T]{items: make([]Item[P, T], 0, capacity), order: order}}
}

// Enqueue adds the given item to the priority queue.
func (p *PriorityQueue[P, T]) Enqueue(item Item[P, T]) {
	heap.Push(&p.inner, item)
}

// Dequeue returns the item which should be served first, where multiple items have the same priority, they're returned
// in an arbitrary order.
//
// NOTE: Dequeuing from an empty queue will panic, use 'TryDequeue' where the queue may be empty.
func (p *PriorityQueue[P, T]) Dequeue() Item[P, T] {
	return heap.Pop(&p.inner).(Item[P, T])
}

// TryDequeue is similar to 'Dequeue' but returns a boolean indicating whether an item was dequeued rather than
// panicking when the queue is empty.
func (p *PriorityQueue[P, T]) TryDequeue() (Item[P, T], bool) {
	if p.Len() == 0 {
		return Item[P, T]{}, false
	}

	return p.Dequeue(), true
}

// Peek returns the item which would be returned by the next call to 'Dequeue' without removing it.
func (p *PriorityQueue[P, T]) Peek() (Item[P, T], bool) {
	if p.Len() == 0 {
		return Item[P, T]{}, false
	}

	return p.inner.items[0], true
}

// Len returns the number of items in the priority queue.
func (p *PriorityQueue[P, T]) Len() int {
	return p.inner.Len()
}

// Drain removes all items from the queue running the given function on each item. In the event of an error, dequeuing
// stops early, and returns the error.
func (p *PriorityQueue[P, T]) Drain(fn func(item Item[P, T]) error) error {
	for p.Len() > 0 {
		if err := fn(p.Dequeue()); err != nil {
			return err
		}
	}

	return nil
}
