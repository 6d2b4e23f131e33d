package genetic

import "math/rand"

// sumProblem maximizes the sum of digit genomes
type sumProblem struct {
	length      int
	allocations int
	mutations   int
	inits       int
}

func (p *sumProblem) Fitness(c *Chromosome[int]) int {
	total := 0
	for _, g := range c.genomes {
		total += g
	}
	return total
}

func (p *sumProblem) Allocate() *Chromosome[int] {
	p.allocations++
	return NewEmptyChromosome[int](p.length)
}

func (p *sumProblem) RandomInit(c *Chromosome[int], rng *rand.Rand) {
	p.inits++
	for i := 0; i < c.Len(); i++ {
		c.Set(i, rng.Intn(10))
	}
}

func (p *sumProblem) Mutate(c *Chromosome[int], rng *rand.Rand) {
	p.mutations++
	c.Set(rng.Intn(c.Len()), rng.Intn(10))
}

func (p *sumProblem) maxFitness() int {
	return 9 * p.length
}
