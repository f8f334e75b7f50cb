package ring

import "sync/atomic"

// idCounter hands out the process-wide contiguous thread ids spec.md §3
// requires: every goroutine that will call ThreadRing.Push/Pop must
// register exactly once, before its first call, and use the returned
// id for the lifetime of the goroutine.
var idCounter atomic.Uint64

// Register assigns the next small, contiguous thread id starting at 0.
// Go has no first-class thread-local storage, so callers are expected
// to capture the returned id in a closure (or a per-goroutine field)
// rather than look it up again later.
func Register() int {
	return int(idCounter.Add(1) - 1)
}

// ResetRegistry clears the process-wide id counter. Intended for tests
// that construct multiple independent ThreadRings and need ids to
// start back at 0.
func ResetRegistry() {
	idCounter.Store(0)
}
