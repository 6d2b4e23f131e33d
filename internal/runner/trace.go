package runner

import (
	"context"
	"fmt"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

// EngineFactory builds a fresh engine for one job from the job's options
type EngineFactory[G any] func(opts ...genetic.Option) (*genetic.Engine[G], error)

// EngineInfo describes the engine a job is traced with
type EngineInfo struct {
	Seed                int64
	Crowd               int
	FitnessThreshold    int
	GenerationThreshold int
}

// Hooks observe the lifecycle of each traced job; every field is optional
type Hooks struct {
	Observers func(job Job) []genetic.Observer
	Started   func(job Job, engine EngineInfo)
	Finished  func(job Job, summary reporting.Summary, err error)
}

// TraceRun adapts an engine factory into a RunFunc. Each call seeds a new engine with job.Seed
// and traces it to completion; ctx is only checked before the engine is built.
// A panicking problem hook fails the run with an error instead of unwinding further.
func TraceRun[G any](problem string, factory EngineFactory[G], hooks Hooks) RunFunc {
	return func(ctx context.Context, job Job) (summary reporting.Summary, err error) {
		defer func() {
			if r := recover(); r != nil {
				summary = reporting.Summary{}
				err = fmt.Errorf("run %s panicked: %v", job.ID, r)
			}
			if hooks.Finished != nil {
				hooks.Finished(job, summary, err)
			}
		}()
		if err = ctx.Err(); err != nil {
			return summary, err
		}

		opts := []genetic.Option{genetic.WithSeed(job.Seed)}
		if hooks.Observers != nil {
			for _, o := range hooks.Observers(job) {
				opts = append(opts, genetic.WithObserver(o))
			}
		}

		engine, err := factory(opts...)
		if err != nil {
			return summary, fmt.Errorf("failed to build engine for run %s: %w", job.ID, err)
		}
		if hooks.Started != nil {
			hooks.Started(job, EngineInfo{
				Seed:                engine.Seed(),
				Crowd:               engine.Crowd(),
				FitnessThreshold:    engine.FitnessThreshold(),
				GenerationThreshold: engine.GenerationThreshold(),
			})
		}

		result, err := engine.Trace()
		if err != nil {
			return summary, fmt.Errorf("run %s failed: %w", job.ID, err)
		}

		summary = reporting.Summarize(job.ID, problem, engine.FitnessThreshold(), engine.GenerationThreshold(), result)
		return summary, nil
	}
}

// Summaries returns the summaries of successful results, in order
func Summaries(results []RunResult) []reporting.Summary {
	out := make([]reporting.Summary, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Summary)
		}
	}
	return out
}
