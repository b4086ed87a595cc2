// Package genpool schedules independent whole-generation jobs across a
// fixed pool of goroutines. Each job gets its own generator.Generator (and
// therefore its own cache), so jobs never share mutable state — spec §5
// only requires that callers wanting parallelism run independent generator
// instances concurrently; this is the worker-pool that does that.
package genpool

import (
	"context"
	"sync"

	"meshforge/internal/generator"
	"meshforge/internal/snapshot"
	"meshforge/pkg/meshmodel"
)

// Job is one snapshot to generate.
type Job struct {
	Snapshot *snapshot.Snapshot
	// ResultChan receives the result when done.
	ResultChan chan Result
}

// Result carries a job's outcome back to its submitter.
type Result struct {
	Object *meshmodel.Object
	Error  error
}

// WorkerPool runs Generate calls for queued jobs across a fixed number of
// goroutines, each backed by its own Generator instance.
type WorkerPool struct {
	jobQueue chan Job
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts a pool of workers goroutines, each pulling jobs off
// a queue of size queueSize.
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// SubmitJob enqueues job without blocking. Returns false if the queue is
// full.
func (p *WorkerPool) SubmitJob(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking enqueues job, blocking until there's room or the pool
// is shut down.
func (p *WorkerPool) SubmitJobBlocking(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			gen := generator.New()
			obj, err := gen.Generate(job.Snapshot)

			select {
			case job.ResultChan <- Result{Object: obj, Error: err}:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown cancels outstanding work and waits for every worker to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
}

// GetQueueLength returns the current number of queued jobs.
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
