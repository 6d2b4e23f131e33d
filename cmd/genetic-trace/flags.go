package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ducminhle1904/genetic-trace/cmd/common"
	"github.com/ducminhle1904/genetic-trace/pkg/config"
)

// TraceFlags holds every command line flag of the command
type TraceFlags struct {
	Common *common.CommonFlags

	Problem             *string
	Queens              *int
	Target              *string
	Charset             *string
	FitnessThreshold    *int
	GenerationThreshold *int
	Crowd               *int
	Seed                *int64
	StableSort          *bool
	Runs                *int
	Workers             *int

	LogDir      *string
	LogEvery    *int
	OutputDir   *string
	JSON        *bool
	CSV         *bool
	Excel       *bool
	MetricsAddr *string
	ArchivePath *string

	ListArchive *bool
	ShowRun     *string
	DeleteRun   *string
}

// NewTraceFlags registers the command's flags on fs
func NewTraceFlags(fs *flag.FlagSet) *TraceFlags {
	def := config.NewDefaultRunConfig()
	return &TraceFlags{
		Common: common.RegisterCommonFlags(fs),

		Problem:             fs.String("problem", def.Problem, "Problem to solve (nqueens, phrase)"),
		Queens:              fs.Int("queens", def.Queens, "Board size for nqueens"),
		Target:              fs.String("target", def.Target, "Target string for phrase"),
		Charset:             fs.String("charset", def.Charset, "Gene alphabet for phrase (default printable ASCII)"),
		FitnessThreshold:    fs.Int("fitness", 0, "Fitness threshold, any value accepted (default problem maximum)"),
		GenerationThreshold: fs.Int("generations", def.GenerationThreshold, "Generation threshold"),
		Crowd:               fs.Int("crowd", def.Crowd, "Population size (multiple of 10)"),
		Seed:                fs.Int64("seed", def.Seed, "Base seed, run i uses seed+i (0 = clock)"),
		StableSort:          fs.Bool("stable-sort", def.StableSort, "Keep insertion order among equal fitness"),
		Runs:                fs.Int("runs", def.Runs, "Number of independent runs"),
		Workers:             fs.Int("workers", def.Workers, "Parallel workers"),

		LogDir:      fs.String("log-dir", def.LogDir, "Log directory (empty = log to stderr)"),
		LogEvery:    fs.Int("log-every", def.LogEvery, "Log every Nth generation (0 = all)"),
		OutputDir:   fs.String("output", def.Output.Dir, "Report output directory"),
		JSON:        fs.Bool("json", def.Output.JSON, "Write JSON summaries"),
		CSV:         fs.Bool("csv", def.Output.CSV, "Write generation history CSV"),
		Excel:       fs.Bool("excel", def.Output.Excel, "Write Excel workbook"),
		MetricsAddr: fs.String("metrics-addr", def.MetricsAddr, "Serve /metrics and /health on this address"),
		ArchivePath: fs.String("archive", def.ArchivePath, "LevelDB archive directory"),

		ListArchive: fs.Bool("list-archive", false, "List archived runs of the configured problem and exit"),
		ShowRun:     fs.String("show-run", "", "Print an archived run by id and exit"),
		DeleteRun:   fs.String("delete-run", "", "Delete an archived run by id and exit"),
	}
}

// archiveMode reports whether the command inspects the archive instead of tracing
func (f *TraceFlags) archiveMode() bool {
	return *f.ListArchive || *f.ShowRun != "" || *f.DeleteRun != ""
}

// Validate rejects bad command line values before any config source is read
func (f *TraceFlags) Validate(fs *flag.FlagSet) error {
	visited := common.VisitedFlags(fs)
	v := common.NewFlagValidator()

	if visited["problem"] {
		v.ValidateChoice("problem", strings.ToLower(*f.Problem), []string{config.ProblemNQueens, config.ProblemPhrase})
	}
	if visited["crowd"] {
		v.ValidateInt("crowd", *f.Crowd, 10, config.MaxCrowd)
		if *f.Crowd%10 != 0 {
			v.AddError(fmt.Sprintf("crowd must be a multiple of 10, got: %d", *f.Crowd))
		}
	}
	if *f.ShowRun != "" && *f.DeleteRun != "" {
		v.AddError("-show-run and -delete-run are mutually exclusive")
	}

	if v.HasErrors() {
		return v.GetError()
	}
	return nil
}

// Overrides returns the config keys of the flags set explicitly on the command line
func (f *TraceFlags) Overrides(fs *flag.FlagSet) map[string]interface{} {
	values := map[string]interface{}{
		"problem":      *f.Problem,
		"queens":       *f.Queens,
		"target":       *f.Target,
		"charset":      *f.Charset,
		"fitness":      *f.FitnessThreshold,
		"generations":  *f.GenerationThreshold,
		"crowd":        *f.Crowd,
		"seed":         *f.Seed,
		"stable-sort":  *f.StableSort,
		"runs":         *f.Runs,
		"workers":      *f.Workers,
		"log-dir":      *f.LogDir,
		"log-every":    *f.LogEvery,
		"output":       *f.OutputDir,
		"json":         *f.JSON,
		"csv":          *f.CSV,
		"excel":        *f.Excel,
		"metrics-addr": *f.MetricsAddr,
		"archive":      *f.ArchivePath,
	}
	keys := map[string]string{
		"fitness":      "fitness_threshold",
		"generations":  "generation_threshold",
		"stable-sort":  "stable_sort",
		"log-dir":      "log_dir",
		"log-every":    "log_every",
		"output":       "output.dir",
		"json":         "output.json",
		"csv":          "output.csv",
		"excel":        "output.excel",
		"metrics-addr": "metrics_addr",
		"archive":      "archive_path",
	}

	overrides := map[string]interface{}{}
	for name := range common.VisitedFlags(fs) {
		value, ok := values[name]
		if !ok {
			continue
		}
		key := name
		if mapped, ok := keys[name]; ok {
			key = mapped
		}
		overrides[key] = value
	}
	return overrides
}
