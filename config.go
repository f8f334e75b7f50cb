package shardpool

import (
	"runtime"

	"github.com/arjunv/shardpool/internal/sem"
)

// Config holds construction options for a Pool. Grounded in the
// teacher's flock.Config/Option functional-options pattern.
type Config struct {
	// NumWorkers is the number of worker goroutines. Must be >= 1 and
	// >= NumShards. Defaults to runtime.NumCPU().
	NumWorkers int

	// NumShards is the number of independent queue shards producers
	// round-robin across. Must be >= 1. Defaults to runtime.NumCPU().
	NumShards int

	// QueueCapacity is each shard's ring capacity; must be a power of
	// two. Defaults to 4096 per spec.md §4.2.
	QueueCapacity int

	// ScanFactor is K in the spec's K×n_shards scan width.
	ScanFactor int

	// SpinIterations is S, the number of times each shard's semaphores
	// busy-poll before parking a blocked Push/Pop. Defaults to
	// sem.DefaultSpinIterations.
	SpinIterations int

	// PanicHandler is invoked with the recovered value when a
	// submitted task panics. If nil, the panic's stack trace is
	// captured and discarded, matching the teacher's default behavior.
	PanicHandler func(any)

	// OnWorkerStart/OnWorkerStop fire once per worker goroutine, around
	// its lifetime.
	OnWorkerStart func(workerID int)
	OnWorkerStop  func(workerID int)
}

// Option configures a Pool at construction.
type Option func(*Config)

func defaultConfig() Config {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return Config{
		NumWorkers:     n,
		NumShards:      n,
		QueueCapacity:  4096,
		ScanFactor:     2,
		SpinIterations: sem.DefaultSpinIterations,
	}
}

// WithNumWorkers sets the number of worker goroutines.
func WithNumWorkers(n int) Option {
	return func(c *Config) { c.NumWorkers = n }
}

// WithNumShards sets the number of queue shards.
func WithNumShards(n int) Option {
	return func(c *Config) { c.NumShards = n }
}

// WithQueueCapacity sets each shard's ring capacity (must be a power
// of two).
func WithQueueCapacity(n int) Option {
	return func(c *Config) { c.QueueCapacity = n }
}

// WithScanFactor sets K, the scan-ahead width multiplier.
func WithScanFactor(k int) Option {
	return func(c *Config) { c.ScanFactor = k }
}

// WithSpinIterations sets S, the busy-poll bound each shard's
// semaphores use before parking.
func WithSpinIterations(s int) Option {
	return func(c *Config) { c.SpinIterations = s }
}

// WithPanicHandler installs a handler invoked on task panic.
func WithPanicHandler(h func(any)) Option {
	return func(c *Config) { c.PanicHandler = h }
}

// WithWorkerHooks installs lifecycle callbacks for worker goroutines.
func WithWorkerHooks(onStart, onStop func(workerID int)) Option {
	return func(c *Config) {
		c.OnWorkerStart = onStart
		c.OnWorkerStop = onStop
	}
}

func (c *Config) validate() error {
	if c.NumWorkers < 1 {
		return errInvalidArgument("NumWorkers must be >= 1")
	}
	if c.NumShards < 1 {
		return errInvalidArgument("NumShards must be >= 1")
	}
	if c.NumWorkers < c.NumShards {
		return errInvalidArgument("NumWorkers must be >= NumShards")
	}
	if c.QueueCapacity <= 0 || c.QueueCapacity&(c.QueueCapacity-1) != 0 {
		return errInvalidArgument("QueueCapacity must be a power of two")
	}
	if c.ScanFactor < 1 {
		return errInvalidArgument("ScanFactor must be >= 1")
	}
	if c.SpinIterations < 0 {
		return errInvalidArgument("SpinIterations must be >= 0")
	}
	return nil
}
