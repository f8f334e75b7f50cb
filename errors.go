package shardpool

import "fmt"

// PoolError represents an error raised by the pool, optionally wrapping
// an underlying cause. Grounded in the teacher's flock.PoolError.
type PoolError struct {
	msg string
	err error
}

// Error implements the error interface.
func (e *PoolError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("shardpool: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("shardpool: %s", e.msg)
}

// Unwrap allows use with errors.Is/errors.As.
func (e *PoolError) Unwrap() error {
	return e.err
}

// Sentinel errors. ErrInvalidArgument is raised at construction time
// per spec.md §7; ErrShutdown and ErrNilTask are never returned by the
// fire-and-forget path (which silently drops on shutdown per spec.md
// §4.4) but are returned by TryEnqueue.
var (
	ErrInvalidArgument = &PoolError{msg: "invalid argument"}
	ErrShutdown        = &PoolError{msg: "pool is shut down"}
	ErrNilTask         = &PoolError{msg: "task is nil"}
)

func errInvalidArgument(msg string) error {
	return &PoolError{msg: msg, err: ErrInvalidArgument}
}
