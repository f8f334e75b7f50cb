package sem

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemPostThenWaitRoundTrip(t *testing.T) {
	s := New(0)
	const n = 10_000
	for i := 0; i < n; i++ {
		s.Post()
	}
	for i := 0; i < n; i++ {
		if !s.Wait() {
			t.Fatalf("Wait() false at %d", i)
		}
	}
	if c := s.Count(); c != 0 {
		t.Fatalf("Count() = %d, want 0", c)
	}
}

func TestSemWaitBlocksUntilPost(t *testing.T) {
	s := New(0)
	released := make(chan struct{})
	go func() {
		if !s.Wait() {
			t.Error("Wait() returned false")
		}
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after Post")
	}
}

func TestSemDoneWakesAllWaiters(t *testing.T) {
	s := New(0)
	const waiters = 8
	var wg sync.WaitGroup
	var falseCount int64
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !s.Wait() {
				atomic.AddInt64(&falseCount, 1)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	s.Done()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Done failed to wake every waiter in time")
	}
	if falseCount != waiters {
		t.Fatalf("falseCount = %d, want %d", falseCount, waiters)
	}
}

func TestSemWaitTimeoutExpires(t *testing.T) {
	s := New(0)
	start := time.Now()
	if s.WaitTimeout(30 * time.Millisecond) {
		t.Fatal("WaitTimeout succeeded on empty semaphore")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("WaitTimeout returned too early: %v", elapsed)
	}
}

func TestSemWaitTimeoutZeroIsNonBlocking(t *testing.T) {
	s := New(1)
	if !s.WaitTimeout(0) {
		t.Fatal("WaitTimeout(0) should acquire an available permit")
	}
	if s.WaitTimeout(0) {
		t.Fatal("WaitTimeout(0) should not block on an empty semaphore")
	}
}

func TestSemTortureConcurrentPostWait(t *testing.T) {
	s := New(1000)
	const goroutines = 8
	const iterations = 1000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.Post()
				if !s.Wait() {
					t.Error("Wait() returned false unexpectedly")
				}
			}
		}()
	}
	wg.Wait()

	if c := s.Count(); c != 1000 {
		t.Fatalf("Count() = %d, want 1000", c)
	}
}
