package genetic

import (
	"fmt"
	"strings"
	"time"
)

// TraceResult is the immutable outcome of a completed run
type TraceResult[G any] struct {
	bestChromosome    []G
	fitness           int
	passedGenerations int
	duration          time.Duration
	crowd             int
	seed              int64
	reached           bool
	history           []GenerationStats
}

func newTraceResult[G any](best *Chromosome[G], fitness, generations int, duration time.Duration, crowd int, seed int64, reached bool, history []GenerationStats) *TraceResult[G] {
	h := make([]GenerationStats, len(history))
	copy(h, history)
	return &TraceResult[G]{
		bestChromosome:    best.Genomes(),
		fitness:           fitness,
		passedGenerations: generations,
		duration:          duration,
		crowd:             crowd,
		seed:              seed,
		reached:           reached,
		history:           h,
	}
}

// BestChromosome returns a copy of the best chromosome's genomes
func (r *TraceResult[G]) BestChromosome() []G {
	out := make([]G, len(r.bestChromosome))
	copy(out, r.bestChromosome)
	return out
}

// Fitness returns the fitness of the best chromosome
func (r *TraceResult[G]) Fitness() int {
	return r.fitness
}

// PassedGenerations returns the number of generations executed (at least 1)
func (r *TraceResult[G]) PassedGenerations() int {
	return r.passedGenerations
}

// Duration returns the wall-clock duration of the run
func (r *TraceResult[G]) Duration() time.Duration {
	return r.duration
}

// Crowd returns the population size used
func (r *TraceResult[G]) Crowd() int {
	return r.crowd
}

// Seed returns the seed of the engine's random source
func (r *TraceResult[G]) Seed() int64 {
	return r.seed
}

// Reached reports whether the run stopped because the fitness threshold was met
func (r *TraceResult[G]) Reached() bool {
	return r.reached
}

// History returns a copy of the per-generation statistics
func (r *TraceResult[G]) History() []GenerationStats {
	out := make([]GenerationStats, len(r.history))
	copy(out, r.history)
	return out
}

// String renders the result as a human readable block
func (r *TraceResult[G]) String() string {
	genomes := make([]string, len(r.bestChromosome))
	for i, g := range r.bestChromosome {
		genomes[i] = fmt.Sprint(g)
	}

	var sb strings.Builder
	sb.WriteString("Trace Result:")
	fmt.Fprintf(&sb, "\n\tbestChromosome    = [%s]", strings.Join(genomes, ", "))
	fmt.Fprintf(&sb, "\n\tfitness           = %d", r.fitness)
	fmt.Fprintf(&sb, "\n\tpassedGenerations = %d", r.passedGenerations)
	fmt.Fprintf(&sb, "\n\tduration          = %d ms", r.duration.Milliseconds())
	fmt.Fprintf(&sb, "\n\tcrowd             = %d", r.crowd)
	return sb.String()
}
