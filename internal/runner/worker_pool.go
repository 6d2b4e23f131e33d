package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

// Job describes one independent trace run
type Job struct {
	Index int
	ID    string
	Seed  int64
}

// RunResult represents the result of a trace job
type RunResult struct {
	Job
	Summary  reporting.Summary
	Duration time.Duration
	Err      error
}

// RunFunc executes a single job; implementations build their own engine per call
type RunFunc func(ctx context.Context, job Job) (reporting.Summary, error)

// WorkerPool manages parallel trace execution
type WorkerPool struct {
	workerCount int
	run         RunFunc
	jobQueue    chan Job
	resultQueue chan RunResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a new worker pool; workerCount <= 0 uses every CPU
func NewWorkerPool(ctx context.Context, workerCount, jobBufferSize int, run RunFunc) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workerCount: workerCount,
		run:         run,
		jobQueue:    make(chan Job, jobBufferSize),
		resultQueue: make(chan RunResult, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the worker pool
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop closes the job queue and waits for in-flight jobs
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// SubmitJob submits a job to the pool
func (wp *WorkerPool) SubmitJob(job Job) error {
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	default:
	}

	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// GetResults returns the result channel for collecting completed jobs
func (wp *WorkerPool) GetResults() <-chan RunResult {
	return wp.resultQueue
}

// worker drains the queue; once the context is done remaining jobs are reported as cancelled
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for job := range wp.jobQueue {
		wp.resultQueue <- wp.processJob(job)
	}
}

func (wp *WorkerPool) processJob(job Job) (result RunResult) {
	result.Job = job

	if err := wp.ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	startTime := time.Now()
	defer func() {
		result.Duration = time.Since(startTime)
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("run %s panicked: %v", job.ID, r)
		}
	}()

	result.Summary, result.Err = wp.run(wp.ctx, job)
	return result
}
