package rendering

import (
	"sync"

	"peakcast/internal/mathutil"
	"peakcast/internal/raycast"
	"peakcast/internal/threading/core"
)

// ParallelRenderer casts a frame's rays in batches on a worker pool
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer creates a parallel renderer backed by its own worker pool
func NewParallelRenderer(workers int) *ParallelRenderer {
	return &ParallelRenderer{
		workerPool: core.CreateDefaultWorkerPool(workers),
	}
}

// RenderRaycast fills results[i] with castFunc(i) for every ray. Each ray writes only its own
// slot, so the output matches a sequential pass exactly. results is reused when large enough.
func (pr *ParallelRenderer) RenderRaycast(numRays int, castFunc func(rayIndex int) raycast.Hit, results []raycast.Hit) []raycast.Hit {
	if cap(results) < numRays {
		results = make([]raycast.Hit, numRays)
	}
	results = results[:numRays]

	// Very small workloads: process inline to avoid synchronization overhead
	if numRays <= 8 {
		for rayIndex := 0; rayIndex < numRays; rayIndex++ {
			results[rayIndex] = castFunc(rayIndex)
		}
		return results
	}

	numWorkers := pr.workerPool.GetNumWorkers()
	batchSize := mathutil.IntClamp(numRays/numWorkers, 4, 32)

	var wg sync.WaitGroup
	for i := 0; i < numRays; i += batchSize {
		start := i
		end := mathutil.IntMin(i+batchSize, numRays)

		wg.Add(1)
		pr.workerPool.Submit(func() {
			defer wg.Done()
			for rayIndex := start; rayIndex < end; rayIndex++ {
				results[rayIndex] = castFunc(rayIndex)
			}
		})
	}
	wg.Wait()

	return results
}

// Workers returns the size of the underlying pool
func (pr *ParallelRenderer) Workers() int {
	return pr.workerPool.GetNumWorkers()
}

// CompletedBatches returns how many ray batches have been processed
func (pr *ParallelRenderer) CompletedBatches() int64 {
	return pr.workerPool.CompletedJobs()
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
