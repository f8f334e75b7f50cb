// Package ring provides the bounded lock-free MPMC ring buffer the
// pool's queue shards are built on, plus the per-thread-table
// alternative described for N-producer/M-consumer use without a
// fullness semaphore.
package ring

import (
	"runtime"
	"sync/atomic"
)

const cacheLinePad = 64

// pad64 occupies a cache line so the four hot counters below never
// false-share with each other.
type pad64 struct {
	_ [cacheLinePad]byte
}

type slot struct {
	val func()
}

// Ring is a fixed-capacity, power-of-two-sized, multi-producer/
// multi-consumer circular buffer of func() slots. Capacity is not
// checked inside the ring; callers (bqueue.Queue) gate entry with
// semaphores so overrun is impossible by construction. Reservation and
// publication are two separate phases per spec.md §4.2: a producer
// first claims a sequence with pushReserve, then waits for pushCommit
// to catch up to it before publishing, so consumers only ever need to
// observe one monotonic counter to know the highest safe sequence.
type Ring struct {
	_ pad64
	pushReserve uint64
	_ pad64
	pushCommit uint64
	_ pad64
	popReserve uint64
	_ pad64
	popCommit uint64
	_ pad64

	mask uint64
	buf  []slot
}

// New allocates a ring whose capacity must be a power of two.
func New(capacity int) *Ring {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be > 0 and a power of two")
	}
	return &Ring{
		mask: uint64(capacity - 1),
		buf:  make([]slot, capacity),
	}
}

// Capacity returns the ring's fixed capacity.
func (r *Ring) Capacity() int {
	return int(r.mask) + 1
}

// Push reserves the next sequence, stores item, and publishes it in
// order. The caller must have already reserved capacity externally
// (via an openSlots semaphore); Push never blocks on fullness.
func (r *Ring) Push(item func()) {
	s := atomic.AddUint64(&r.pushReserve, 1) - 1
	r.buf[s&r.mask].val = item
	for atomic.LoadUint64(&r.pushCommit) != s {
		runtime.Gosched()
	}
	atomic.StoreUint64(&r.pushCommit, s+1)
}

// Pop reserves the next sequence to consume, moves the item out, and
// retires it in order. The caller must have already confirmed
// fullness externally (via a fullSlots semaphore); Pop never blocks on
// emptiness.
func (r *Ring) Pop() func() {
	s := atomic.AddUint64(&r.popReserve, 1) - 1
	slot := &r.buf[s&r.mask]
	for atomic.LoadUint64(&r.pushCommit) <= s {
		runtime.Gosched()
	}
	item := slot.val
	slot.val = nil
	for atomic.LoadUint64(&r.popCommit) != s {
		runtime.Gosched()
	}
	atomic.StoreUint64(&r.popCommit, s+1)
	return item
}

// Len returns an approximate number of live items, valid outside a
// producer/consumer's critical reservation window.
func (r *Ring) Len() int {
	push := atomic.LoadUint64(&r.pushCommit)
	pop := atomic.LoadUint64(&r.popCommit)
	return int(push - pop)
}
