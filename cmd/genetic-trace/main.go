package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ducminhle1904/genetic-trace/cmd/common"
	"github.com/ducminhle1904/genetic-trace/internal/archive"
	"github.com/ducminhle1904/genetic-trace/internal/logger"
	"github.com/ducminhle1904/genetic-trace/internal/monitoring"
	"github.com/ducminhle1904/genetic-trace/internal/runner"
	"github.com/ducminhle1904/genetic-trace/pkg/config"
	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
	"github.com/ducminhle1904/genetic-trace/pkg/problems/nqueens"
	"github.com/ducminhle1904/genetic-trace/pkg/problems/phrase"
	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

const AppName = "genetic-trace"

var errRunsFailed = errors.New("one or more runs failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("❌ %v", err)
	}
}

// run is the whole command; it returns instead of exiting so it can be tested
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := NewTraceFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *flags.Common.Version {
		common.PrintVersion(stdout, AppName)
		return nil
	}
	if *flags.Common.Help {
		usage().PrintUsage(stdout, fs)
		return nil
	}

	if err := flags.Validate(fs); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg, err := config.NewManager(*flags.Common.EnvFile).Load(*flags.Common.ConfigFile, flags.Overrides(fs))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	quiet := *flags.Common.Quiet

	if flags.archiveMode() {
		return inspectArchive(cfg, flags, stdout)
	}

	lg, err := newLogger(cfg, quiet, stderr)
	if err != nil {
		return err
	}
	defer lg.Close()

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)
	health := monitoring.NewHealthChecker()
	if cfg.MetricsAddr != "" {
		shutdown := serveMonitoring(cfg.MetricsAddr, registry, health, lg)
		defer shutdown()
	}

	traceRun, err := newTraceRun(cfg, runHooks(cfg, lg, metrics, health))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	baseSeed := cfg.Seed
	if cfg.RandomSeed() {
		baseSeed = runner.ClockSeed()
	}

	var progressOut io.Writer
	if !quiet && cfg.Runs > 1 {
		progressOut = stderr
	}

	lg.Info("%s %s", common.ProjectName, common.GetFullVersion())
	lg.Info("starting %d run(s) of %s with base seed %d on %d worker(s)", cfg.Runs, cfg.ProblemName(), baseSeed, cfg.Workers)
	results := runner.NewBatchProcessor(cfg.Workers, traceRun, progressOut).Run(ctx, cfg.Runs, baseSeed)
	summaries := runner.Summaries(results)
	if len(summaries) == 0 {
		lg.Warning("no run of %s finished, skipping reports", cfg.ProblemName())
		return runsFailed(results, stderr)
	}

	reports := reporting.NewReportingManager(reporting.ReportingConfig{
		EnableConsole:   cfg.Output.Console && !quiet,
		EnableFiles:     true,
		OutputDirectory: cfg.Output.Dir,
		ExcelEnabled:    cfg.Output.Excel,
		CSVEnabled:      cfg.Output.CSV,
		JSONEnabled:     cfg.Output.JSON,
		Console:         stdout,
	})

	var written []string
	if len(summaries) == 1 && cfg.Runs == 1 {
		written, err = reports.ReportRun(summaries[0])
	} else {
		written, err = reports.ReportBatch(summaries)
	}
	if err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	for _, path := range written {
		lg.Info("report written to %s", path)
	}

	if best, ok := reporting.BestOf(summaries); ok && !quiet && cfg.Problem == config.ProblemNQueens {
		printBoard(stdout, best)
	}

	if cfg.ArchivePath != "" {
		if err := archiveSummaries(cfg.ArchivePath, summaries); err != nil {
			return err
		}
		lg.Info("archived %d run(s) to %s", len(summaries), cfg.ArchivePath)
	}

	return runsFailed(results, stderr)
}

// runsFailed prints every failed run and wraps the first failure
func runsFailed(results []runner.RunResult, stderr io.Writer) error {
	var first error
	failed := 0
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if first == nil {
			first = r.Err
		}
		failed++
		fmt.Fprintf(stderr, "run %d (%s): %v\n", r.Index+1, r.ID, r.Err)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d: %w", errRunsFailed, failed, len(results), first)
	}
	return nil
}

// newLogger logs to a file under the log directory, or to stderr when none is configured
func newLogger(cfg *config.RunConfig, quiet bool, stderr io.Writer) (*logger.Logger, error) {
	if cfg.LogDir == "" {
		w := stderr
		if quiet {
			w = io.Discard
		}
		return logger.NewWriterLogger(w, cfg.ProblemName()), nil
	}

	lg, err := logger.NewLogger(cfg.LogDir, cfg.ProblemName())
	if err != nil {
		return nil, err
	}
	if !quiet {
		fmt.Fprintf(stderr, "📝 Logging to %s\n", lg.GetLogPath())
	}
	return lg, nil
}

func usage() *common.UsageFormatter {
	return common.NewUsageFormatter(AppName, "Evolve solutions with a percentile-band genetic algorithm").
		AddExample("genetic-trace -problem nqueens -queens 8 -crowd 100 -seed 42", "Solve the 8 queens puzzle").
		AddExample("genetic-trace -problem phrase -target \"hello world\" -runs 10 -excel", "Batch of 10 phrase runs with an Excel report").
		AddExample("genetic-trace -config run.yaml -metrics-addr :9090", "Load a config file and expose Prometheus metrics")
}

// newTraceRun builds the RunFunc of the configured problem
func newTraceRun(cfg *config.RunConfig, hooks runner.Hooks) (runner.RunFunc, error) {
	name := cfg.ProblemName()
	stable := genetic.WithStableSort(cfg.StableSort)

	switch cfg.Problem {
	case config.ProblemNQueens:
		p, err := nqueens.New(cfg.Queens)
		if err != nil {
			return nil, err
		}
		threshold := cfg.FitnessThresholdOr(p.MaxFitness())
		return runner.TraceRun[int](name, func(opts ...genetic.Option) (*genetic.Engine[int], error) {
			return genetic.NewEngine[int](p, threshold, cfg.GenerationThreshold, cfg.Crowd, append(opts, stable)...)
		}, hooks), nil

	case config.ProblemPhrase:
		p, err := phrase.New(cfg.Target, cfg.Charset)
		if err != nil {
			return nil, err
		}
		threshold := cfg.FitnessThresholdOr(p.MaxFitness())
		return runner.TraceRun[byte](name, func(opts ...genetic.Option) (*genetic.Engine[byte], error) {
			return genetic.NewEngine[byte](p, threshold, cfg.GenerationThreshold, cfg.Crowd, append(opts, stable)...)
		}, hooks), nil
	}

	return nil, fmt.Errorf("unknown problem %q", cfg.Problem)
}

// runHooks wires logging, metrics and health tracking into every run
func runHooks(cfg *config.RunConfig, lg *logger.Logger, metrics *monitoring.Metrics, health *monitoring.HealthChecker) runner.Hooks {
	name := cfg.ProblemName()
	return runner.Hooks{
		Observers: func(job runner.Job) []genetic.Observer {
			return []genetic.Observer{
				logger.NewGenerationLogger(lg, job.ID, cfg.LogEvery),
				metrics.Observer(name),
			}
		},
		Started: func(job runner.Job, engine runner.EngineInfo) {
			health.RunStarted()
			lg.LogRunStarted(job.ID, engine.Seed, engine.Crowd, engine.FitnessThreshold, engine.GenerationThreshold)
		},
		Finished: func(job runner.Job, summary reporting.Summary, err error) {
			health.RunFinished(err)
			if err != nil {
				metrics.RecordError(name, err)
				lg.LogError("run "+job.ID, err)
				return
			}
			metrics.RecordRun(name, summary.Reached, summary.Duration.Seconds())
			lg.LogRunFinished(job.ID, summary.Fitness, summary.PassedGenerations, summary.Reached, summary.Duration)
		},
	}
}

// serveMonitoring exposes /metrics and /health until the returned function is called
func serveMonitoring(addr string, registry *prometheus.Registry, health *monitoring.HealthChecker, lg *logger.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler(registry))
	mux.Handle("/health", health)

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.LogError("metrics server", err)
		}
	}()
	lg.Info("serving metrics on %s", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.LogError("metrics server shutdown", err)
		}
	}
}

func archiveSummaries(path string, summaries []reporting.Summary) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.PutAll(summaries); err != nil {
		return fmt.Errorf("failed to archive runs: %w", err)
	}
	return nil
}

// inspectArchive lists, prints or deletes archived runs
func inspectArchive(cfg *config.RunConfig, flags *TraceFlags, stdout io.Writer) error {
	if cfg.ArchivePath == "" {
		return errors.New("no archive configured, set -archive")
	}
	a, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer a.Close()

	switch {
	case *flags.DeleteRun != "":
		if err := a.Delete(*flags.DeleteRun); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		fmt.Fprintf(stdout, "🗑️  Deleted run %s\n", *flags.DeleteRun)

	case *flags.ShowRun != "":
		s, err := a.Get(*flags.ShowRun)
		if err != nil {
			return err
		}
		reporting.OutputConsole(stdout, s)

	default:
		runs, err := a.List(cfg.ProblemName())
		if err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintf(stdout, "No archived runs of %s\n", cfg.ProblemName())
			return nil
		}
		reporting.NewDefaultConsoleReporter().OutputBatch(stdout, runs)
	}
	return nil
}

func printBoard(w io.Writer, s reporting.Summary) {
	rows := make([]int, len(s.BestChromosome))
	for i, g := range s.BestChromosome {
		if _, err := fmt.Sscan(g, &rows[i]); err != nil {
			return
		}
	}
	fmt.Fprintf(w, "\nBest board (fitness %d):\n%s", s.Fitness, nqueens.Board(rows))
}
