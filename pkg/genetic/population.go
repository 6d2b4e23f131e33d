package genetic

import (
	"sort"
)

// individual is a chromosome paired with its cached fitness
type individual[G any] struct {
	chromosome *Chromosome[G]
	fitness    int
}

// population is an ordered collection of individuals, ascending by fitness once sorted
type population[G any] struct {
	individuals []individual[G]
}

func newPopulation[G any](capacity int) *population[G] {
	return &population[G]{
		individuals: make([]individual[G], 0, capacity),
	}
}

// add appends a chromosome with its fitness
func (p *population[G]) add(c *Chromosome[G], fitness int) {
	p.individuals = append(p.individuals, individual[G]{chromosome: c, fitness: fitness})
}

// size returns the number of individuals in the population
func (p *population[G]) size() int {
	return len(p.individuals)
}

// at returns the individual at index i
func (p *population[G]) at(i int) individual[G] {
	return p.individuals[i]
}

// sortByFitness sorts the population ascending (best last)
func (p *population[G]) sortByFitness(stable bool) {
	less := func(i, j int) bool {
		return p.individuals[i].fitness < p.individuals[j].fitness
	}
	if stable {
		sort.SliceStable(p.individuals, less)
		return
	}
	sort.Slice(p.individuals, less)
}

// best returns the last individual; only meaningful after sortByFitness
func (p *population[G]) best() individual[G] {
	return p.individuals[len(p.individuals)-1]
}

// fitnesses returns all cached fitness values in population order
func (p *population[G]) fitnesses() []float64 {
	out := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		out[i] = float64(ind.fitness)
	}
	return out
}
