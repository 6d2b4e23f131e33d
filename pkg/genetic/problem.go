package genetic

import "math/rand"

// Problem supplies the problem-specific behaviour the engine evolves against.
// The engine never interprets genome values itself.
type Problem[G any] interface {
	// Fitness scores a chromosome; higher is better. Must be pure.
	Fitness(c *Chromosome[G]) int

	// Allocate returns a fresh chromosome of the problem's fixed length
	Allocate() *Chromosome[G]

	// RandomInit fills every slot with a valid random value
	RandomInit(c *Chromosome[G], rng *rand.Rand)

	// Mutate applies a small random perturbation in place
	Mutate(c *Chromosome[G], rng *rand.Rand)
}

// ProblemFuncs bundles plain functions into a Problem
type ProblemFuncs[G any] struct {
	FitnessFunc    func(c *Chromosome[G]) int
	AllocateFunc   func() *Chromosome[G]
	RandomInitFunc func(c *Chromosome[G], rng *rand.Rand)
	MutateFunc     func(c *Chromosome[G], rng *rand.Rand)
}

func (p ProblemFuncs[G]) Fitness(c *Chromosome[G]) int {
	return p.FitnessFunc(c)
}

func (p ProblemFuncs[G]) Allocate() *Chromosome[G] {
	return p.AllocateFunc()
}

func (p ProblemFuncs[G]) RandomInit(c *Chromosome[G], rng *rand.Rand) {
	p.RandomInitFunc(c, rng)
}

func (p ProblemFuncs[G]) Mutate(c *Chromosome[G], rng *rand.Rand) {
	p.MutateFunc(c, rng)
}
