// Command primecount is the demonstration driver from the original
// thread_pool exercise: enqueue a batch of primality checks across a
// sharded pool and report how many primes were found.
//
// It mirrors the original's fixed workload (odd numbers 3..99, repeated
// maxN times) so the expected prime count is a known constant per maxN,
// which makes it useful as a smoke test for the pool as well as a CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arjunv/shardpool"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var maxN, workers, shards int

	cmd := &cobra.Command{
		Use:   "primecount [max-n] [workers] [shards]",
		Short: "Count primes among 3..99 over a sharded pool, maxN times.",
		Long: `primecount reproduces the original thread_pool demo: for each of
maxN rounds, it enqueues a primality check for every odd number from
3 to 99 onto a sharded pool, then reports the total prime count and
elapsed time.

The three positional arguments are accepted for compatibility with the
original "primecount maxN workers shards" invocation; the --max-n,
--workers, and --shards flags are the preferred form.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) > 0 {
				if maxN, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("max-n: %w", err)
				}
			}
			if len(args) > 1 {
				if workers, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("workers: %w", err)
				}
			}
			if len(args) > 2 {
				if shards, err = strconv.Atoi(args[2]); err != nil {
					return fmt.Errorf("shards: %w", err)
				}
			}
			return run(maxN, workers, shards)
		},
	}

	cmd.Flags().IntVar(&maxN, "max-n", 100000, "number of rounds over the fixed 3..99 workload")
	cmd.Flags().IntVar(&workers, "workers", 2, "number of worker goroutines")
	cmd.Flags().IntVar(&shards, "shards", 2, "number of queue shards")

	return cmd
}

func run(maxN, workers, shards int) error {
	start := time.Now()

	var primeCount int64
	p, err := shardpool.New(
		shardpool.WithNumWorkers(workers),
		shardpool.WithNumShards(shards),
	)
	if err != nil {
		return fmt.Errorf("construct pool: %w", err)
	}

	for j := 0; j < maxN; j++ {
		for i := 3; i < 100; i += 2 {
			n := i
			p.Enqueue(func() {
				if isPrime(n) {
					atomic.AddInt64(&primeCount, 1)
				}
			})
		}
	}

	color.New(color.FgCyan).Println("Enqueue ended. Stopping pool...")
	p.Close()

	elapsed := time.Since(start)

	color.New(color.FgHiGreen, color.Bold).
		Printf("First %d rounds of 3..99: %d primes found\n", maxN, primeCount)
	color.New(color.FgYellow).Printf("Duration: %dms.\n", elapsed.Milliseconds())

	return nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i <= n/2; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
