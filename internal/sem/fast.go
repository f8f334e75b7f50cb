package sem

import "sync/atomic"

// DefaultSpinIterations is the spin count NewFast uses via NewFastDefault.
// Matches the spec's S ≈ 10000.
const DefaultSpinIterations = 10_000

// Fast is a counting semaphore whose fast path is a single atomic
// fetch-add instead of a mutex acquisition. The signed counter encodes
// both available permits (positive) and registered sleepers (negative)
// in one word: a negative value after Post's fetch-add means a waiter
// already committed to sleeping on inner and must be woken explicitly.
//
// Grounded in go-redis's internal.FastSemaphore / internal/pool.fastSemaphore
// (atomic CAS fast path, channel-backed slow path), adapted to a
// nested-Sem slow path and a spin phase per the spec.
type Fast struct {
	count          int64 // atomic
	inner          *Sem
	spinIterations int
}

// NewFast creates a fast semaphore with the given initial permit count
// and spin bound S: Wait busy-polls TryWait up to S times before
// parking on the nested Sem.
func NewFast(count int64, spinIterations int) *Fast {
	return &Fast{count: count, inner: New(0), spinIterations: spinIterations}
}

// NewFastDefault creates a fast semaphore using DefaultSpinIterations.
func NewFastDefault(count int64) *Fast {
	return NewFast(count, DefaultSpinIterations)
}

// Post releases one permit. If a waiter had already committed to
// sleeping (observed by the pre-increment value being negative), it is
// woken via the nested blocking semaphore.
func (f *Fast) Post() {
	prev := atomic.AddInt64(&f.count, 1) - 1
	if prev < 0 {
		f.inner.Post()
	}
}

// TryWait attempts to acquire a permit without blocking or spinning.
func (f *Fast) TryWait() bool {
	for {
		c := atomic.LoadInt64(&f.count)
		if c <= 0 {
			return false
		}
		if atomic.CompareAndSwapInt64(&f.count, c, c-1) {
			return true
		}
	}
}

// Wait acquires a permit, spinning briefly before parking on the
// nested Sem. Returns false only after Done has torn the semaphore down
// and no permit was ever obtained.
func (f *Fast) Wait() bool {
	if f.TryWait() {
		return true
	}
	for i := 0; i < f.spinIterations; i++ {
		if f.TryWait() {
			return true
		}
	}

	// fetch-sub: newVal is the value after the decrement, so the value
	// observed by this call before it ran is newVal+1. A non-positive
	// previous value means no permit was available and this waiter
	// must park on inner; Post wakes it by checking the same sign.
	newVal := atomic.AddInt64(&f.count, -1)
	prev := newVal + 1
	if prev <= 0 {
		return f.inner.Wait()
	}
	return true
}

// WaitTimeout is a non-blocking poll: it performs only TryWait
// regardless of d. The pool itself never calls it; its queues poll with
// TryWait directly.
func (f *Fast) WaitTimeout(_ int64) bool {
	return f.TryWait()
}

// Done propagates shutdown to the nested semaphore, waking every
// parked waiter with a false return.
func (f *Fast) Done() {
	f.inner.Done()
}

// Count returns a snapshot of the current signed counter. Positive
// values are available permits; non-positive values indicate sleepers
// are registered (or none are, at exactly zero).
func (f *Fast) Count() int64 {
	return atomic.LoadInt64(&f.count)
}
