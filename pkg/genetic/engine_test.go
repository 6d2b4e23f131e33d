package genetic

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_InvalidCrowd(t *testing.T) {
	for _, crowd := range []int{7, 15, 0, -10} {
		engine, err := NewEngine[int](&sumProblem{length: 5}, 10, 10, crowd)

		assert.Nil(t, engine, "crowd %d", crowd)
		require.Error(t, err, "crowd %d", crowd)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "crowd %d", crowd)
	}
}

func TestNewEngine_InvalidCrowd_NoAllocation(t *testing.T) {
	p := &sumProblem{length: 5}

	_, err := NewEngine[int](p, 10, 10, 7)

	require.Error(t, err)
	assert.Zero(t, p.allocations)
	assert.Zero(t, p.inits)
}

func TestNewEngine_InvalidGenerationThreshold(t *testing.T) {
	_, err := NewEngine[int](&sumProblem{length: 5}, 10, 0, 10)

	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestNewEngine_NilProblem(t *testing.T) {
	_, err := NewEngine[int](nil, 10, 10, 10)

	assert.True(t, IsConfigurationError(err))
}

func TestNewEngine_Accessors(t *testing.T) {
	engine, err := NewEngine[int](&sumProblem{length: 5}, 40, 25, 30, WithSeed(99))
	require.NoError(t, err)

	assert.Equal(t, 30, engine.Crowd())
	assert.Equal(t, int64(99), engine.Seed())
	assert.Equal(t, 40, engine.FitnessThreshold())
	assert.Equal(t, 25, engine.GenerationThreshold())
	assert.Equal(t, Bands{Crowd: 30, P10: 3, P40: 12, P90: 27}, engine.Bands())
	assert.Empty(t, engine.Population())
}

func TestTrace_ThresholdBelowWorstFitness(t *testing.T) {
	p := &sumProblem{length: 5}
	engine, err := NewEngine[int](p, -1, 100, 10, WithSeed(1))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	assert.Equal(t, 1, result.PassedGenerations())
	assert.True(t, result.Reached())
	assert.Equal(t, 10, p.allocations)
	assert.Zero(t, p.mutations)
	assert.Len(t, result.History(), 1)
}

func TestTrace_GenerationThresholdOfOne(t *testing.T) {
	engine, err := NewEngine[int](&sumProblem{length: 5}, 1000, 1, 10, WithSeed(1))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	assert.Equal(t, 1, result.PassedGenerations())
	assert.False(t, result.Reached())
}

func TestTrace_HookCallCounts(t *testing.T) {
	p := &sumProblem{length: 6}
	engine, err := NewEngine[int](p, 1000, 3, 10, WithSeed(3))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	require.Equal(t, 3, result.PassedGenerations())
	// 10 initial + 2 generations * (6 crossover children + 1 elite clone + 1 weak clone)
	assert.Equal(t, 26, p.allocations)
	assert.Equal(t, 10, p.inits)
	assert.Equal(t, 4, p.mutations)
}

func TestTrace_Invariants(t *testing.T) {
	p := &sumProblem{length: 8}
	var generations []GenerationStats
	observer := ObserverFunc(func(stats GenerationStats) {
		generations = append(generations, stats)
	})

	engine, err := NewEngine[int](p, p.maxFitness(), 60, 40, WithSeed(11), WithObserver(observer))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.PassedGenerations(), 1)
	assert.LessOrEqual(t, result.PassedGenerations(), 60)
	assert.True(t, result.PassedGenerations() == 60 || result.Fitness() >= p.maxFitness())
	assert.Equal(t, 40, result.Crowd())
	assert.Equal(t, int64(11), result.Seed())
	assert.Len(t, result.BestChromosome(), 8)
	assert.Equal(t, p.Fitness(NewChromosome(result.BestChromosome()...)), result.Fitness())

	require.Len(t, generations, result.PassedGenerations())
	for i, stats := range generations {
		assert.Equal(t, i+1, stats.Generation)
		assert.GreaterOrEqual(t, stats.Best, stats.Worst)
		assert.GreaterOrEqual(t, stats.Mean, float64(stats.Worst))
		assert.LessOrEqual(t, stats.Mean, float64(stats.Best))
	}
	assert.Equal(t, generations, result.History())

	fitness := engine.PopulationFitness()
	require.Len(t, fitness, 40)
	assert.Len(t, engine.Population(), 40)
	for i := 1; i < len(fitness); i++ {
		assert.LessOrEqual(t, fitness[i-1], fitness[i])
	}
	assert.Equal(t, result.Fitness(), fitness[39])
}

func TestTrace_BestNeverRegresses(t *testing.T) {
	p := &sumProblem{length: 10}
	var best []int
	engine, err := NewEngine[int](p, 1000, 40, 20, WithSeed(5), WithObserver(ObserverFunc(func(s GenerationStats) {
		best = append(best, s.Best)
	})))
	require.NoError(t, err)

	_, err = engine.Trace()
	require.NoError(t, err)

	// elite carry-over keeps the previous best in every generation
	for i := 1; i < len(best); i++ {
		assert.GreaterOrEqual(t, best[i], best[i-1])
	}
}

func TestTrace_Deterministic(t *testing.T) {
	run := func() *TraceResult[int] {
		engine, err := NewEngine[int](&sumProblem{length: 12}, 1000, 30, 20, WithSeed(42))
		require.NoError(t, err)
		result, err := engine.Trace()
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	assert.Equal(t, a.BestChromosome(), b.BestChromosome())
	assert.Equal(t, a.Fitness(), b.Fitness())
	assert.Equal(t, a.PassedGenerations(), b.PassedGenerations())
}

func TestTrace_WithRand(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	engine, err := NewEngine[int](&sumProblem{length: 5}, 45, 200, 10, WithRand(rng), WithStableSort(true))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)
	assert.LessOrEqual(t, result.PassedGenerations(), 200)
}

func TestTrace_ResultIsSnapshot(t *testing.T) {
	engine, err := NewEngine[int](&sumProblem{length: 5}, 1000, 2, 10, WithSeed(2))
	require.NoError(t, err)

	result, err := engine.Trace()
	require.NoError(t, err)

	genomes := result.BestChromosome()
	genomes[0] = -100
	assert.NotEqual(t, -100, result.BestChromosome()[0])

	history := result.History()
	history[0].Best = -1
	assert.NotEqual(t, -1, result.History()[0].Best)
}

func TestTrace_ChromosomeTooShort(t *testing.T) {
	engine, err := NewEngine[int](&sumProblem{length: 2}, 1000, 10, 10, WithSeed(1))
	require.NoError(t, err)

	result, err := engine.Trace()
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
}

func TestTrace_AllocatorLengthDrift(t *testing.T) {
	calls := 0
	p := ProblemFuncs[int]{
		FitnessFunc: func(c *Chromosome[int]) int { return 0 },
		AllocateFunc: func() *Chromosome[int] {
			calls++
			if calls > 3 {
				return NewEmptyChromosome[int](4)
			}
			return NewEmptyChromosome[int](5)
		},
		RandomInitFunc: func(c *Chromosome[int], rng *rand.Rand) {},
		MutateFunc:     func(c *Chromosome[int], rng *rand.Rand) {},
	}
	engine, err := NewEngine[int](p, 10, 10, 10)
	require.NoError(t, err)

	_, err = engine.Trace()
	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
	assert.Contains(t, err.Error(), "length 4")
}

func TestTrace_AllocatorNil(t *testing.T) {
	p := ProblemFuncs[int]{
		FitnessFunc:    func(c *Chromosome[int]) int { return 0 },
		AllocateFunc:   func() *Chromosome[int] { return nil },
		RandomInitFunc: func(c *Chromosome[int], rng *rand.Rand) {},
		MutateFunc:     func(c *Chromosome[int], rng *rand.Rand) {},
	}
	engine, err := NewEngine[int](p, 10, 10, 10)
	require.NoError(t, err)

	_, err = engine.Trace()
	assert.True(t, IsPreconditionError(err))
}

func TestTrace_HookPanicPropagates(t *testing.T) {
	p := ProblemFuncs[int]{
		FitnessFunc:    func(c *Chromosome[int]) int { panic("fitness exploded") },
		AllocateFunc:   func() *Chromosome[int] { return NewEmptyChromosome[int](4) },
		RandomInitFunc: func(c *Chromosome[int], rng *rand.Rand) {},
		MutateFunc:     func(c *Chromosome[int], rng *rand.Rand) {},
	}
	engine, err := NewEngine[int](p, 10, 10, 10)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "fitness exploded", func() { _, _ = engine.Trace() })
}

func TestTraceResult_String(t *testing.T) {
	result := newTraceResult(NewChromosome(1, 2, 3), 3, 4, 0, 10, 1, true, nil)

	s := result.String()
	assert.Contains(t, s, "bestChromosome    = [1, 2, 3]")
	assert.Contains(t, s, "fitness           = 3")
	assert.Contains(t, s, "passedGenerations = 4")
	assert.Contains(t, s, "crowd             = 10")
}
