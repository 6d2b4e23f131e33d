package genetic

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes the fitness distribution of one sorted generation
type GenerationStats struct {
	Generation int           `json:"generation"`
	Best       int           `json:"best"`
	Worst      int           `json:"worst"`
	Mean       float64       `json:"mean"`
	StdDev     float64       `json:"std_dev"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Observer is notified after every generation has been sorted,
// including the initial population (generation 1)
type Observer interface {
	OnGeneration(stats GenerationStats)
}

// ObserverFunc adapts a plain function to the Observer interface
type ObserverFunc func(stats GenerationStats)

// OnGeneration calls f(stats)
func (f ObserverFunc) OnGeneration(stats GenerationStats) {
	f(stats)
}

// computeStats builds the statistics of a sorted population
func computeStats[G any](p *population[G], generation int, elapsed time.Duration) GenerationStats {
	values := p.fitnesses()
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		std = 0
	}
	return GenerationStats{
		Generation: generation,
		Best:       p.best().fitness,
		Worst:      p.at(0).fitness,
		Mean:       mean,
		StdDev:     std,
		Elapsed:    elapsed,
	}
}
