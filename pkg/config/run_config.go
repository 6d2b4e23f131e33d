package config

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	ProblemNQueens = "nqueens"
	ProblemPhrase  = "phrase"

	DefaultQueens              = 8
	DefaultTarget              = "hello genetic world"
	DefaultCrowd               = 100
	DefaultGenerationThreshold = 1000
)

// OutputConfig controls which reports are produced
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
	JSON    bool   `mapstructure:"json"`
	CSV     bool   `mapstructure:"csv"`
	Excel   bool   `mapstructure:"excel"`
}

// RunConfig holds everything needed to run a batch of traces
type RunConfig struct {
	Problem string `mapstructure:"problem"`
	Queens  int    `mapstructure:"queens"`
	Target  string `mapstructure:"target"`
	Charset string `mapstructure:"charset"`

	// FitnessThreshold is nil when runs should stop at the problem's maximum fitness
	FitnessThreshold    *int  `mapstructure:"fitness_threshold"`
	GenerationThreshold int   `mapstructure:"generation_threshold"`
	Crowd               int   `mapstructure:"crowd"`
	Seed                int64 `mapstructure:"seed"`
	StableSort          bool  `mapstructure:"stable_sort"`

	Runs    int `mapstructure:"runs"`
	Workers int `mapstructure:"workers"`

	LogDir   string `mapstructure:"log_dir"`
	LogEvery int    `mapstructure:"log_every"`

	Output      OutputConfig `mapstructure:"output"`
	MetricsAddr string       `mapstructure:"metrics_addr"`
	ArchivePath string       `mapstructure:"archive_path"`
}

// NewDefaultRunConfig returns the defaults used before any file, env or flag is applied
func NewDefaultRunConfig() *RunConfig {
	return &RunConfig{
		Problem:             ProblemNQueens,
		Queens:              DefaultQueens,
		Target:              DefaultTarget,
		GenerationThreshold: DefaultGenerationThreshold,
		Crowd:               DefaultCrowd,
		Runs:                1,
		Workers:             runtime.NumCPU(),
		LogDir:              "logs",
		LogEvery:            50,
		Output: OutputConfig{
			Dir:     "results",
			Console: true,
			JSON:    true,
		},
	}
}

// ProblemName returns a short label such as "nqueens-8"
func (c *RunConfig) ProblemName() string {
	switch strings.ToLower(c.Problem) {
	case ProblemNQueens:
		return fmt.Sprintf("%s-%d", ProblemNQueens, c.Queens)
	case ProblemPhrase:
		return fmt.Sprintf("%s-%d", ProblemPhrase, len(c.Target))
	default:
		return c.Problem
	}
}

// FitnessThresholdOr returns the configured fitness threshold, or max when none is set
func (c *RunConfig) FitnessThresholdOr(max int) int {
	if c.FitnessThreshold == nil {
		return max
	}
	return *c.FitnessThreshold
}

// RandomSeed reports whether runs should be seeded from the clock
func (c *RunConfig) RandomSeed() bool {
	return c.Seed == 0
}

// settings flattens the config into viper keys
func (c *RunConfig) settings() map[string]interface{} {
	settings := map[string]interface{}{
		"problem":              c.Problem,
		"queens":               c.Queens,
		"target":               c.Target,
		"charset":              c.Charset,
		"generation_threshold": c.GenerationThreshold,
		"crowd":                c.Crowd,
		"seed":                 c.Seed,
		"stable_sort":          c.StableSort,
		"runs":                 c.Runs,
		"workers":              c.Workers,
		"log_dir":              c.LogDir,
		"log_every":            c.LogEvery,
		"output.dir":           c.Output.Dir,
		"output.console":       c.Output.Console,
		"output.json":          c.Output.JSON,
		"output.csv":           c.Output.CSV,
		"output.excel":         c.Output.Excel,
		"metrics_addr":         c.MetricsAddr,
		"archive_path":         c.ArchivePath,
	}
	if c.FitnessThreshold != nil {
		settings["fitness_threshold"] = *c.FitnessThreshold
	}
	return settings
}
