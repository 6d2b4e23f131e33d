package runner

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
)

// BatchProcessor runs a number of independent traces in parallel
type BatchProcessor struct {
	workers  int
	run      RunFunc
	progress io.Writer
}

// NewBatchProcessor creates a new batch processor; a nil progress writer disables the progress bar
func NewBatchProcessor(workers int, run RunFunc, progress io.Writer) *BatchProcessor {
	return &BatchProcessor{
		workers:  workers,
		run:      run,
		progress: progress,
	}
}

// Jobs builds the jobs of a batch; run i gets seed baseSeed+i
func Jobs(runs int, baseSeed int64) []Job {
	jobs := make([]Job, runs)
	for i := range jobs {
		jobs[i] = Job{
			Index: i,
			ID:    uuid.NewString(),
			Seed:  baseSeed + int64(i),
		}
	}
	return jobs
}

// ProcessBatch runs every job and returns one result per job ordered by index.
// Jobs not started before ctx is done carry ctx.Err().
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []Job) []RunResult {
	if len(jobs) == 0 {
		return nil
	}

	workers := bp.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	pool := NewWorkerPool(ctx, workers, len(jobs), bp.run)
	pool.Start()

	tracker := NewProgressTracker(len(jobs), bp.progress)
	defer tracker.Stop()

	var skipped []RunResult
	go func() {
		for _, job := range jobs {
			if err := pool.SubmitJob(job); err != nil {
				skipped = append(skipped, RunResult{Job: job, Err: err})
			}
		}
		pool.Stop()
	}()

	results := make([]RunResult, 0, len(jobs))
	for result := range pool.GetResults() {
		tracker.Increment(result.Err != nil)
		results = append(results, result)
	}
	// the result channel is closed only after the submitting goroutine calls Stop
	for _, result := range skipped {
		tracker.Increment(true)
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

// Run is a convenience wrapper building runs jobs from baseSeed
func (bp *BatchProcessor) Run(ctx context.Context, runs int, baseSeed int64) []RunResult {
	return bp.ProcessBatch(ctx, Jobs(runs, baseSeed))
}

// ClockSeed returns a seed derived from the current time
func ClockSeed() int64 {
	return time.Now().UnixNano()
}
