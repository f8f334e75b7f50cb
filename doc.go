// Package shardpool provides a sharded, lock-free, fire-and-forget
// goroutine pool.
//
// # Why sharded
//
// A single shared queue funnels every producer and every worker through
// one set of hot atomics. shardpool instead gives each worker a home
// queue shard and lets producers round-robin across shards with a
// scan-ahead try-push, so contention on any one shard stays low even
// under many concurrent producers.
//
// # Quick start
//
//	p, err := shardpool.New(
//	    shardpool.WithNumWorkers(8),
//	    shardpool.WithNumShards(4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.Enqueue(func() {
//	    fmt.Println("work executed")
//	})
//
// # Fire-and-forget vs. tasks
//
// Enqueue is the primary, fire-and-forget path: the caller cannot
// observe completion or a panic. EnqueueTask returns a Handle the
// caller can Wait on for a value (or a re-raised panic).
//
// # Shutdown
//
// Close marks every shard done and blocks until all workers drain
// their queues and exit. A pool used after Close accepts further
// Enqueue calls but may silently drop them — the caller racing with
// shutdown has no delivery guarantee on the fire-and-forget path; use
// EnqueueTask and Handle.Wait if delivery must be observable.
package shardpool
