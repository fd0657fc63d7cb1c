package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolCreation(t *testing.T) {
	pool := NewWorkerPool(4)
	if pool.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", pool.GetNumWorkers())
	}

	defaultPool := NewWorkerPool(0)
	if defaultPool.GetNumWorkers() <= 0 {
		t.Error("Default worker pool should use CPU count")
	}
}

func TestWorkerPoolJobExecution(t *testing.T) {
	pool := CreateDefaultWorkerPool(2)
	defer pool.Stop()

	var counter atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			counter.Add(1)
		})
	}
	pool.Wait()

	if counter.Load() != 10 {
		t.Errorf("Expected 10 executed jobs, got %d", counter.Load())
	}
	if pool.CompletedJobs() != 10 {
		t.Errorf("Expected 10 completed jobs, got %d", pool.CompletedJobs())
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	pool := CreateDefaultWorkerPool(3)
	defer pool.Stop()

	results := make([]int, 200)
	pool.ParallelFor(0, len(results), func(i int) {
		results[i] = i * 2
	})

	for i, v := range results {
		if v != i*2 {
			t.Fatalf("index %d: expected %d, got %d", i, i*2, v)
		}
	}
}

func TestWorkerPoolParallelForCancelled(t *testing.T) {
	pool := CreateDefaultWorkerPool(2)
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	pool.ParallelForWithContext(ctx, 0, 100, func(int) { ran.Add(1) })
	if ran.Load() != 0 {
		t.Errorf("cancelled loop should not run any iteration, ran %d", ran.Load())
	}
}

func TestWorkerPoolConcurrentCallers(t *testing.T) {
	pool := CreateDefaultWorkerPool(4)
	defer pool.Stop()

	var wg sync.WaitGroup
	for caller := 0; caller < 5; caller++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]int, 64)
			pool.ParallelFor(0, len(out), func(i int) { out[i] = 1 })
			for i, v := range out {
				if v != 1 {
					t.Errorf("index %d not processed", i)
				}
			}
		}()
	}
	wg.Wait()
}

func TestWorkerPoolStopTwice(t *testing.T) {
	pool := CreateDefaultWorkerPool(1)
	pool.Stop()
	pool.Stop()
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if c.Get() != 1000 {
		t.Errorf("Expected 1000, got %d", c.Get())
	}
	c.Set(5)
	if c.Add(-2) != 3 {
		t.Errorf("Expected 3 after Add(-2), got %d", c.Get())
	}
}
