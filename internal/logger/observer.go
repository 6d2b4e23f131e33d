package logger

import "github.com/ducminhle1904/genetic-trace/pkg/genetic"

// GenerationLogger logs every Nth generation of a run, plus the first one
type GenerationLogger struct {
	logger *Logger
	runID  string
	every  int
}

// NewGenerationLogger returns an engine observer; every <= 0 logs all generations
func NewGenerationLogger(l *Logger, runID string, every int) *GenerationLogger {
	if every <= 0 {
		every = 1
	}
	return &GenerationLogger{logger: l, runID: runID, every: every}
}

// OnGeneration implements genetic.Observer
func (g *GenerationLogger) OnGeneration(stats genetic.GenerationStats) {
	if stats.Generation == 1 || stats.Generation%g.every == 0 {
		g.logger.LogGeneration(g.runID, stats)
	}
}

var _ genetic.Observer = (*GenerationLogger)(nil)
