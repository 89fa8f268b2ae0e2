// SPDX-License-Identifier: EPL-2.0

// Package ring provides a bounded lock-free queue for handing values from
// exactly one producer goroutine to exactly one consumer goroutine.
//
// Neither side ever blocks: Push reports false when the queue is full and Pop
// reports false when it is empty. This makes the queue safe to use from a
// real-time audio callback, which must never wait on another goroutine.
package ring

import "sync/atomic"

// Queue is a fixed-capacity single-producer/single-consumer FIFO.
//
// Push must only be called from one goroutine at a time, and Pop must only
// be called from one goroutine at a time. The two may run concurrently.
type Queue[T any] struct {
	buf  []T
	mask uint64

	head atomic.Uint64 // next slot to read, owned by the consumer
	tail atomic.Uint64 // next slot to write, owned by the producer
}

// New returns a queue holding at least size values. The capacity is rounded
// up to the next power of two.
func New[T any](size int) *Queue[T] {
	n := 1
	for n < size {
		n <<= 1
	}

	return &Queue[T]{
		buf:  make([]T, n),
		mask: uint64(n - 1),
	}
}

// Push appends v, returning false without side effects if the queue is full.
func (q *Queue[T]) Push(v T) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}

	q.buf[tail&q.mask] = v
	q.tail.Store(tail + 1)

	return true
}

// Pop removes the oldest value, returning false if the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T

	head := q.head.Load()
	if head == q.tail.Load() {
		return zero, false
	}

	slot := &q.buf[head&q.mask]
	v := *slot
	// Drop the reference so popped pointers can be collected.
	*slot = zero
	q.head.Store(head + 1)

	return v, true
}

// Len is the number of queued values. It is only a snapshot when the other
// side is running concurrently.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Cap is the maximum number of values the queue can hold.
func (q *Queue[T]) Cap() int { return len(q.buf) }
