package reporting

import (
	"fmt"
	"time"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
)

// Summary is the problem-independent view of a completed run used by every reporter
type Summary struct {
	RunID               string                    `json:"run_id"`
	Problem             string                    `json:"problem"`
	BestChromosome      []string                  `json:"best_chromosome"`
	Fitness             int                       `json:"fitness"`
	FitnessThreshold    int                       `json:"fitness_threshold"`
	PassedGenerations   int                       `json:"passed_generations"`
	GenerationThreshold int                       `json:"generation_threshold"`
	Duration            time.Duration             `json:"duration"`
	Crowd               int                       `json:"crowd"`
	Seed                int64                     `json:"seed"`
	Reached             bool                      `json:"reached"`
	FinishedAt          time.Time                 `json:"finished_at"`
	History             []genetic.GenerationStats `json:"history,omitempty"`
}

// Summarize flattens a trace result into a Summary
func Summarize[G any](runID, problem string, fitnessThreshold, generationThreshold int, result *genetic.TraceResult[G]) Summary {
	best := result.BestChromosome()
	genomes := make([]string, len(best))
	for i, g := range best {
		genomes[i] = fmt.Sprint(g)
	}

	return Summary{
		RunID:               runID,
		Problem:             problem,
		BestChromosome:      genomes,
		Fitness:             result.Fitness(),
		FitnessThreshold:    fitnessThreshold,
		PassedGenerations:   result.PassedGenerations(),
		GenerationThreshold: generationThreshold,
		Duration:            result.Duration(),
		Crowd:               result.Crowd(),
		Seed:                result.Seed(),
		Reached:             result.Reached(),
		FinishedAt:          time.Now(),
		History:             result.History(),
	}
}

// Outcome returns "reached" or "exhausted" depending on which threshold stopped the run
func (s Summary) Outcome() string {
	if s.Reached {
		return "reached"
	}
	return "exhausted"
}

// BestOf returns the summary with the highest fitness, fewer generations winning ties
func BestOf(summaries []Summary) (Summary, bool) {
	if len(summaries) == 0 {
		return Summary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.Fitness > best.Fitness || (s.Fitness == best.Fitness && s.PassedGenerations < best.PassedGenerations) {
			best = s
		}
	}
	return best, true
}
