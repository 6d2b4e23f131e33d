package runner

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
	"github.com/ducminhle1904/genetic-trace/pkg/problems/nqueens"
	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

func queensFactory(queens, generations, crowd int) EngineFactory[int] {
	return func(opts ...genetic.Option) (*genetic.Engine[int], error) {
		engine, _, err := nqueens.NewEngine(queens, generations, crowd, opts...)
		return engine, err
	}
}

func TestJobsSeeds(t *testing.T) {
	jobs := Jobs(4, 100)
	require.Len(t, jobs, 4)

	ids := map[string]bool{}
	for i, job := range jobs {
		assert.Equal(t, i, job.Index)
		assert.Equal(t, int64(100+i), job.Seed)
		assert.NotEmpty(t, job.ID)
		ids[job.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestProcessBatchOrderedAndDeterministic(t *testing.T) {
	run := TraceRun("nqueens-6", queensFactory(6, 40, 20), Hooks{})

	jobs := Jobs(6, 7)
	first := NewBatchProcessor(3, run, nil).ProcessBatch(context.Background(), jobs)
	second := NewBatchProcessor(1, run, nil).ProcessBatch(context.Background(), jobs)

	require.Len(t, first, 6)
	require.Len(t, second, 6)
	for i := range first {
		require.NoError(t, first[i].Err)
		assert.Equal(t, i, first[i].Index)
		assert.Equal(t, jobs[i].ID, first[i].Summary.RunID)
		assert.Equal(t, jobs[i].Seed, first[i].Summary.Seed)
		assert.Equal(t, "nqueens-6", first[i].Summary.Problem)
		assert.Equal(t, 15, first[i].Summary.FitnessThreshold)
		assert.Equal(t, 40, first[i].Summary.GenerationThreshold)

		assert.Equal(t, second[i].Summary.BestChromosome, first[i].Summary.BestChromosome)
		assert.Equal(t, second[i].Summary.PassedGenerations, first[i].Summary.PassedGenerations)
	}

	assert.Len(t, Summaries(first), 6)
}

func TestProcessBatchHooks(t *testing.T) {
	var mu sync.Mutex
	generations := map[string]int{}
	started := map[string]int64{}
	var finished int32

	hooks := Hooks{
		Observers: func(job Job) []genetic.Observer {
			return []genetic.Observer{genetic.ObserverFunc(func(stats genetic.GenerationStats) {
				mu.Lock()
				generations[job.ID]++
				mu.Unlock()
			})}
		},
		Started: func(job Job, engine EngineInfo) {
			mu.Lock()
			started[job.ID] = engine.Seed
			mu.Unlock()
			assert.Equal(t, 10, engine.FitnessThreshold)
			assert.Equal(t, 30, engine.GenerationThreshold)
			assert.Equal(t, 10, engine.Crowd)
		},
		Finished: func(job Job, summary reporting.Summary, err error) {
			atomic.AddInt32(&finished, 1)
		},
	}

	jobs := Jobs(3, 1)
	results := NewBatchProcessor(2, TraceRun("nqueens-5", queensFactory(5, 30, 10), hooks), nil).
		ProcessBatch(context.Background(), jobs)

	assert.Equal(t, int32(3), atomic.LoadInt32(&finished))
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, r.Summary.PassedGenerations, generations[r.ID])
		assert.Equal(t, r.Seed, started[r.ID])
		assert.Len(t, r.Summary.History, r.Summary.PassedGenerations)
	}
}

func TestProcessBatchEngineError(t *testing.T) {
	run := TraceRun("nqueens-8", queensFactory(8, 10, 15), Hooks{})
	results := NewBatchProcessor(2, run, nil).Run(context.Background(), 2, 1)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, genetic.ErrInvalidConfiguration)
	}
	assert.Empty(t, Summaries(results))
}

func TestProcessBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	run := func(ctx context.Context, job Job) (reporting.Summary, error) {
		atomic.AddInt32(&calls, 1)
		return reporting.Summary{RunID: job.ID}, nil
	}

	results := NewBatchProcessor(2, run, nil).Run(ctx, 5, 0)
	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestProcessBatchRecoversPanics(t *testing.T) {
	run := func(ctx context.Context, job Job) (reporting.Summary, error) {
		if job.Index == 1 {
			panic("fitness hook exploded")
		}
		return reporting.Summary{RunID: job.ID}, nil
	}

	results := NewBatchProcessor(2, run, nil).Run(context.Background(), 3, 0)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "fitness hook exploded")
	assert.NoError(t, results[2].Err)
}

func TestTraceRunPanicReachesFinished(t *testing.T) {
	problem := genetic.ProblemFuncs[int]{
		FitnessFunc: func(c *genetic.Chromosome[int]) int { panic("boom") },
		AllocateFunc: func() *genetic.Chromosome[int] {
			return genetic.NewChromosome(make([]int, 4)...)
		},
		RandomInitFunc: func(c *genetic.Chromosome[int], rng *rand.Rand) {},
		MutateFunc:     func(c *genetic.Chromosome[int], rng *rand.Rand) {},
	}
	factory := func(opts ...genetic.Option) (*genetic.Engine[int], error) {
		return genetic.NewEngine[int](problem, 10, 5, 10, opts...)
	}

	var mu sync.Mutex
	var finishedErr error
	finished := 0
	hooks := Hooks{
		Finished: func(job Job, summary reporting.Summary, err error) {
			mu.Lock()
			defer mu.Unlock()
			finished++
			finishedErr = err
			assert.Empty(t, summary.RunID)
		},
	}

	results := NewBatchProcessor(1, TraceRun[int]("panics", factory, hooks), nil).Run(context.Background(), 1, 0)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "panicked: boom")

	assert.Equal(t, 1, finished)
	require.Error(t, finishedErr)
	assert.Equal(t, results[0].Err.Error(), finishedErr.Error())
}

func TestProcessBatchEmpty(t *testing.T) {
	assert.Nil(t, NewBatchProcessor(2, nil, nil).ProcessBatch(context.Background(), nil))
}

func TestProgressTracker(t *testing.T) {
	var out bytes.Buffer
	pt := NewProgressTracker(4, &out)
	assert.Equal(t, "Tracing 4 runs", pt.message())

	pt.Increment(false)
	pt.Increment(true)
	assert.Equal(t, 2, pt.completed)
	assert.Equal(t, 1, pt.failed)
	assert.Equal(t, "Tracing 4 runs (1 failed)", pt.tracker.Message)

	pt.Stop()
	assert.True(t, pt.tracker.IsDone())
}

func TestProgressTrackerNoOutput(t *testing.T) {
	pt := NewProgressTracker(2, nil)
	pt.Increment(true)
	assert.Nil(t, pt.tracker)
	assert.Equal(t, 1, pt.failed)
	pt.Stop()
}

func TestTraceRunContextChecked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	built := false
	run := TraceRun[int]("x", func(opts ...genetic.Option) (*genetic.Engine[int], error) {
		built = true
		return nil, errors.New("unreachable")
	}, Hooks{})

	_, err := run(ctx, Job{ID: "a"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, built)
}
