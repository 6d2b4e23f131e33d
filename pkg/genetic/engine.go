package genetic

import (
	"math/rand"
	"time"
)

// Engine runs the generational evolution loop for one problem.
// An Engine is not safe for concurrent use; each run owns its population and RNG.
type Engine[G any] struct {
	problem             Problem[G]
	fitnessThreshold    int
	generationThreshold int
	crowd               int
	bands               Bands

	rng        *rand.Rand
	seed       int64
	stableSort bool
	observers  []Observer

	population *population[G]
	length     int
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	seed       int64
	seeded     bool
	rng        *rand.Rand
	stableSort bool
	observers  []Observer
}

// WithSeed seeds the engine's random source for reproducible runs
func WithSeed(seed int64) Option {
	return func(o *engineOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithRand injects the random source shared by selection, crossover and hooks
func WithRand(rng *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = rng
	}
}

// WithStableSort keeps equal-fitness chromosomes in their insertion order
func WithStableSort(stable bool) Option {
	return func(o *engineOptions) {
		o.stableSort = stable
	}
}

// WithObserver registers an observer notified after every sorted generation
func WithObserver(observer Observer) Option {
	return func(o *engineOptions) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

// NewEngine creates an engine. crowd must be positive and divisible by 10,
// generationThreshold must be at least 1.
func NewEngine[G any](problem Problem[G], fitnessThreshold, generationThreshold, crowd int, opts ...Option) (*Engine[G], error) {
	if problem == nil {
		return nil, newConfigError("new engine", "problem hooks are required")
	}
	if crowd <= 0 || crowd%10 != 0 {
		return nil, newConfigError("new engine", "crowd must be a positive integer divisible by 10, got %d", crowd).
			WithContext("crowd", crowd)
	}
	if generationThreshold < 1 {
		return nil, newConfigError("new engine", "generation threshold must be at least 1, got %d", generationThreshold)
	}

	bands := NewBands(crowd)
	if err := bands.Validate(); err != nil {
		return nil, err
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = time.Now().UnixNano()
	}
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(o.seed))
	}

	return &Engine[G]{
		problem:             problem,
		fitnessThreshold:    fitnessThreshold,
		generationThreshold: generationThreshold,
		crowd:               crowd,
		bands:               bands,
		rng:                 rng,
		seed:                o.seed,
		stableSort:          o.stableSort,
		observers:           o.observers,
		population:          newPopulation[G](crowd),
		length:              -1,
	}, nil
}

// Crowd returns the population size
func (e *Engine[G]) Crowd() int { return e.crowd }

// Bands returns the percentile cut points used by the generation step
func (e *Engine[G]) Bands() Bands { return e.bands }

// Seed returns the seed of the engine's random source
func (e *Engine[G]) Seed() int64 { return e.seed }

// FitnessThreshold returns the fitness at which a run stops successfully
func (e *Engine[G]) FitnessThreshold() int { return e.fitnessThreshold }

// GenerationThreshold returns the maximum number of generations
func (e *Engine[G]) GenerationThreshold() int { return e.generationThreshold }

// Trace runs the evolution loop until the best chromosome reaches the fitness
// threshold or the generation threshold is exhausted. Every call starts from a
// fresh random population; the random source carries over between calls.
// Panics raised by problem hooks propagate to the caller.
func (e *Engine[G]) Trace() (*TraceResult[G], error) {
	start := time.Now()

	pop, err := e.initialPopulation()
	if err != nil {
		return nil, err
	}
	pop.sortByFitness(e.stableSort)

	generation := 1
	history := make([]GenerationStats, 0, 16)
	history = append(history, e.notify(pop, generation, start))

	for generation < e.generationThreshold && pop.best().fitness < e.fitnessThreshold {
		next, err := e.nextGeneration(pop)
		if err != nil {
			return nil, err
		}
		pop = next
		pop.sortByFitness(e.stableSort)
		generation++
		history = append(history, e.notify(pop, generation, start))
	}

	e.population = pop
	best := pop.best()
	return newTraceResult(
		best.chromosome,
		best.fitness,
		generation,
		time.Since(start),
		e.crowd,
		e.seed,
		best.fitness >= e.fitnessThreshold,
		history,
	), nil
}

// initialPopulation allocates and randomizes crowd chromosomes
func (e *Engine[G]) initialPopulation() (*population[G], error) {
	e.length = -1
	pop := newPopulation[G](e.crowd)
	for i := 0; i < e.crowd; i++ {
		c, err := e.allocate()
		if err != nil {
			return nil, err
		}
		e.problem.RandomInit(c, e.rng)
		pop.add(c, e.problem.Fitness(c))
	}
	return pop, nil
}

// nextGeneration builds the replacement population from the sorted one
func (e *Engine[G]) nextGeneration(pop *population[G]) (*population[G], error) {
	b := e.bands
	next := newPopulation[G](e.crowd)

	// upper 60% paired for crossover
	for i := b.P40; i < b.Crowd; i += 2 {
		if i+1 >= b.Crowd {
			return nil, newPreconditionError("generation", "crossover index %d has no partner", i)
		}
		c1, err := e.allocate()
		if err != nil {
			return nil, err
		}
		c2, err := e.allocate()
		if err != nil {
			return nil, err
		}
		if err := Crossover(pop.at(i).chromosome, pop.at(i+1).chromosome, c1, c2, e.rng); err != nil {
			return nil, err
		}
		next.add(c1, e.problem.Fitness(c1))
		next.add(c2, e.problem.Fitness(c2))
	}

	// elite and weak carry-over, unmodified
	for i := b.P90; i < b.Crowd; i++ {
		ind := pop.at(i)
		next.add(ind.chromosome, ind.fitness)
	}
	for i := 0; i < b.P10; i++ {
		ind := pop.at(i)
		next.add(ind.chromosome, ind.fitness)
	}

	// elite and weak mutation, always on clones
	for i := b.P90; i < b.Crowd; i++ {
		if err := e.addMutant(next, pop.at(i).chromosome); err != nil {
			return nil, err
		}
	}
	for i := 0; i < b.P10; i++ {
		if err := e.addMutant(next, pop.at(i).chromosome); err != nil {
			return nil, err
		}
	}

	if next.size() != e.crowd {
		return nil, newPreconditionError("generation", "next population has %d chromosomes, want %d", next.size(), e.crowd)
	}
	return next, nil
}

func (e *Engine[G]) addMutant(next *population[G], src *Chromosome[G]) error {
	c, err := e.allocate()
	if err != nil {
		return err
	}
	c.copyFrom(src)
	e.problem.Mutate(c, e.rng)
	next.add(c, e.problem.Fitness(c))
	return nil
}

// allocate calls the allocator hook and enforces a fixed chromosome length
func (e *Engine[G]) allocate() (*Chromosome[G], error) {
	c := e.problem.Allocate()
	if c == nil {
		return nil, newPreconditionError("allocate", "allocator returned nil chromosome")
	}
	if e.length < 0 {
		e.length = c.Len()
	} else if c.Len() != e.length {
		return nil, newPreconditionError("allocate", "allocator returned length %d, want %d", c.Len(), e.length)
	}
	return c, nil
}

func (e *Engine[G]) notify(pop *population[G], generation int, start time.Time) GenerationStats {
	stats := computeStats(pop, generation, time.Since(start))
	for _, o := range e.observers {
		o.OnGeneration(stats)
	}
	return stats
}

// Population returns the genomes of the last population, ascending by fitness.
// It is empty before the first Trace.
func (e *Engine[G]) Population() [][]G {
	out := make([][]G, e.population.size())
	for i, ind := range e.population.individuals {
		out[i] = ind.chromosome.Genomes()
	}
	return out
}

// PopulationFitness returns the cached fitness of the last population in order
func (e *Engine[G]) PopulationFitness() []int {
	out := make([]int, e.population.size())
	for i, ind := range e.population.individuals {
		out[i] = ind.fitness
	}
	return out
}
