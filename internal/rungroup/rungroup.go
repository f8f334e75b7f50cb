// Package rungroup supervises the long-lived worker goroutines backing
// a Pool: spawn with panic recovery, join on shutdown, and report how
// many are still running. Adapted from the teacher's group.Group
// (structured-concurrency goroutine group with a cancelable context),
// simplified to fire-and-forget supervision since a worker loop has no
// result to report — the cancelable context lets a future immediate
// shutdown path stop workers without waiting for them to drain.
package rungroup

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Group spawns and joins a fixed set of supervised goroutines.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running   atomic.Int64
	completed atomic.Int64

	onPanic func(recovered any, stack []byte)
}

// New creates a Group whose context is canceled by Stop. onPanic, if
// non-nil, is invoked (from the panicking goroutine, after recovery)
// whenever a supervised function panics; a nil onPanic discards it.
func New(onPanic func(recovered any, stack []byte)) *Group {
	ctx, cancel := context.WithCancel(context.Background())
	return &Group{ctx: ctx, cancel: cancel, onPanic: onPanic}
}

// Go runs fn in a new goroutine with panic recovery. fn receives the
// Group's context so it can observe Stop being called.
func (g *Group) Go(fn func(ctx context.Context)) {
	g.running.Add(1)
	g.wg.Add(1)

	go func() {
		defer func() {
			g.running.Add(-1)
			g.completed.Add(1)
			g.wg.Done()
		}()
		defer func() {
			if r := recover(); r != nil && g.onPanic != nil {
				g.onPanic(r, debug.Stack())
			}
		}()
		fn(g.ctx)
	}()
}

// Stop cancels the Group's context. It does not itself wait for the
// spawned goroutines to notice and exit; call Wait for that.
func (g *Group) Stop() {
	g.cancel()
}

// Wait blocks until every spawned goroutine has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}

// Stats reports how many supervised goroutines are running vs. have
// completed, grounded in the teacher's Group.Stats but trimmed to the
// two counters a Pool actually exposes.
type Stats struct {
	Running   int64
	Completed int64
}

// Stats returns a snapshot of the Group's goroutine counts.
func (g *Group) Stats() Stats {
	return Stats{Running: g.running.Load(), Completed: g.completed.Load()}
}
