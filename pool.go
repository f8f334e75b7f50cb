// Package shardpool is a multi-queue, work-distributing goroutine pool
// for short-lived, fire-and-forget closures. It shards work across
// several internal bounded blocking queues instead of funneling it
// through one, and producers/workers scan a K×n_shards window before
// falling back to a blocking push/pop on their home shard.
//
// Grounded in the teacher's flock.Pool: round-robin dispatch with a
// scan-ahead try_push loop, a graceful/immediate Shutdown, and panic
// recovery around task execution, generalized from one MPSC queue per
// worker to N shards shared by M >= N workers.
package shardpool

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/arjunv/shardpool/internal/bqueue"
	"github.com/arjunv/shardpool/internal/rendezvous"
	"github.com/arjunv/shardpool/internal/rungroup"
)

// Pool owns a fixed set of queue shards and worker goroutines.
type Pool struct {
	cfg    Config
	shards []*bqueue.Queue
	group  *rungroup.Group

	nextShard atomic.Uint64
	closed    atomic.Bool
	aborted   atomic.Bool

	shardMap *rendezvous.Map
	shardIdx map[string]int
}

// New constructs a Pool. It fails with ErrInvalidArgument if NumWorkers
// < 1, NumShards < 1, or NumWorkers < NumShards.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:    cfg,
		shards: make([]*bqueue.Queue, cfg.NumShards),
	}
	for i := range p.shards {
		p.shards[i] = bqueue.New(cfg.QueueCapacity, cfg.SpinIterations)
	}

	shardKeys := make([]string, cfg.NumShards)
	p.shardIdx = make(map[string]int, cfg.NumShards)
	for i := range shardKeys {
		shardKeys[i] = "shard-" + strconv.Itoa(i)
		p.shardIdx[shardKeys[i]] = i
	}
	p.shardMap = rendezvous.New(shardKeys...)

	p.group = rungroup.New(func(r any, stack []byte) {
		if p.cfg.PanicHandler != nil {
			p.cfg.PanicHandler(r)
		} else {
			_ = stack // discarded, matching worker.execute's default
		}
	})
	for i := 0; i < cfg.NumWorkers; i++ {
		w := &worker{id: i, home: i % cfg.NumShards, pool: p}
		p.group.Go(func(ctx context.Context) { w.run() })
	}

	return p, nil
}

// scanWidth is K * n_shards, the number of shards a producer or worker
// probes non-blockingly before falling back to a blocking call on its
// preferred shard.
func (p *Pool) scanWidth() int {
	return p.cfg.ScanFactor * len(p.shards)
}

// Enqueue submits f for fire-and-forget execution. Producers round-robin
// across shards with scan-ahead; if every shard is momentarily full the
// call blocks on one shard. If the pool is closed the item may be
// silently dropped, per spec.md §4.4's failure semantics.
func (p *Pool) Enqueue(f func()) {
	if f == nil {
		return
	}
	start := int(p.nextShard.Add(1) - 1)
	n := len(p.shards)
	width := p.scanWidth()
	for k := 0; k < width; k++ {
		idx := (start + k) % n
		if p.shards[idx].TryPush(f) {
			return
		}
	}
	p.shards[start%n].Push(f)
}

// TryEnqueue is Enqueue's error-observing counterpart: it reports
// ErrNilTask for a nil f and ErrShutdown if the pool has already been
// closed, instead of silently dropping the item as Enqueue does.
func (p *Pool) TryEnqueue(f func()) error {
	if f == nil {
		return ErrNilTask
	}
	if p.closed.Load() {
		return ErrShutdown
	}
	p.Enqueue(f)
	return nil
}

// EnqueueKeyed submits f for fire-and-forget execution, routing by a
// caller-supplied affinity key via rendezvous hashing instead of round
// robin, so the same key always lands on the same shard for a given
// shard count. Additive to the round-robin Enqueue path; grounded in
// go-redis's internal/rendezvoushash.Map, which go-redis itself uses
// for consistent node selection.
func (p *Pool) EnqueueKeyed(key string, f func()) {
	if f == nil {
		return
	}
	idx := p.shardIdx[p.shardMap.Get(key)]
	if p.shards[idx].TryPush(f) {
		return
	}
	p.shards[idx].Push(f)
}

// Handle is returned by EnqueueTask; it lets a caller await the
// result of a task-with-completion-handle enqueue.
type Handle[T any] struct {
	done chan struct{}
	val  T
	err  any // recovered panic value, if any
}

// Wait blocks until the task has executed and returns its value. It
// panics with the task's recovered panic value, if the task panicked,
// mirroring the caller's own stack rather than swallowing it silently.
func (h *Handle[T]) Wait() T {
	<-h.done
	if h.err != nil {
		panic(h.err)
	}
	return h.val
}

// Done returns a channel closed when the task has completed.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// EnqueueTask submits f and returns a Handle the caller can await for
// its result. Unlike Enqueue, delivery is observable: submission after
// Close returns a Handle whose Wait never returns a value because the
// item is dropped exactly as the fire-and-forget path drops it — the
// caller should treat a pool already IsClosed() as ErrShutdown before
// calling this.
func EnqueueTask[T any](p *Pool, f func() T) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	p.Enqueue(func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = r
				if p.cfg.PanicHandler != nil {
					p.cfg.PanicHandler(r)
				}
			}
		}()
		h.val = f()
	})
	return h
}

// Close drains every shard (blocking until queued work completes) and
// joins every worker. Multiple calls are safe; only the first has an
// effect.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for _, s := range p.shards {
		s.Done()
	}
	p.group.Wait()
}

// CloseNow marks the pool closed and tells every worker to stop taking
// new work after the task it is currently executing, dropping whatever
// remains queued on every shard, instead of draining it like Close.
func (p *Pool) CloseNow() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.aborted.Store(true)
	p.group.Stop()
	for _, s := range p.shards {
		s.Done()
	}
	p.group.Wait()
}

// IsClosed reports whether Close or CloseNow has been called.
func (p *Pool) IsClosed() bool {
	return p.closed.Load()
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.cfg.NumWorkers
}

// NumShards returns the number of queue shards.
func (p *Pool) NumShards() int {
	return len(p.shards)
}

// WorkerStats reports how many worker goroutines are currently running
// versus have exited, per rungroup.Group.Stats.
func (p *Pool) WorkerStats() rungroup.Stats {
	return p.group.Stats()
}
