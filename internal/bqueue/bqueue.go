// Package bqueue composes a ring.Ring with two sem.Fast semaphores into
// the bounded blocking queue shard each pool worker scans.
package bqueue

import (
	"github.com/arjunv/shardpool/internal/ring"
	"github.com/arjunv/shardpool/internal/sem"
)

// Queue is a bounded, blocking, multi-producer/multi-consumer queue.
// openSlots starts at capacity and gates producers; fullSlots starts at
// zero and gates consumers. Grounded in flock's lockFreeQueue (a bounded
// buffer with head/tail gating), generalized from its single-consumer
// head/tail comparison to MPMC by delegating all capacity accounting to
// the two semaphores instead.
type Queue struct {
	ring      *ring.Ring
	openSlots *sem.Fast
	fullSlots *sem.Fast
	done      bool // informational only; the semaphores carry shutdown
}

// New creates a queue shard with the given power-of-two capacity.
// spinIterations bounds how long each semaphore busy-polls before
// parking; see sem.Fast.
func New(capacity, spinIterations int) *Queue {
	return &Queue{
		ring:      ring.New(capacity),
		openSlots: sem.NewFast(int64(capacity), spinIterations),
		fullSlots: sem.NewFast(0, spinIterations),
	}
}

// Push blocks until a slot is free or the queue is done, in which case
// the item is silently dropped.
func (q *Queue) Push(item func()) {
	if !q.openSlots.Wait() {
		return
	}
	q.ring.Push(item)
	q.fullSlots.Post()
}

// TryPush attempts to enqueue without blocking. Returns false if the
// queue is full or done.
func (q *Queue) TryPush(item func()) bool {
	if !q.openSlots.TryWait() {
		return false
	}
	q.ring.Push(item)
	q.fullSlots.Post()
	return true
}

// Pop blocks until an item is available or the queue is done, in which
// case it returns false and does not touch the ring.
func (q *Queue) Pop() (func(), bool) {
	if !q.fullSlots.Wait() {
		return nil, false
	}
	item := q.ring.Pop()
	q.openSlots.Post()
	return item, true
}

// TryPop attempts to dequeue without blocking. Returns false if the
// queue is empty or done.
func (q *Queue) TryPop() (func(), bool) {
	if !q.fullSlots.TryWait() {
		return nil, false
	}
	item := q.ring.Pop()
	q.openSlots.Post()
	return item, true
}

// Done tears the queue down: every Push or Pop blocked on an empty
// semaphore wakes with a dropped or false result, and so does every
// later one that finds no permit. Calls that still find a permit (a Pop
// or TryPop while items remain, a Push or TryPush while slots are free)
// go on succeeding, which is how remaining items are drained.
func (q *Queue) Done() {
	q.done = true
	q.openSlots.Done()
	q.fullSlots.Done()
}

// Len returns an approximate queue depth.
func (q *Queue) Len() int {
	return q.ring.Len()
}

// Capacity returns the shard's fixed capacity.
func (q *Queue) Capacity() int {
	return q.ring.Capacity()
}
