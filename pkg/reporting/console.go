package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gonum.org/v1/gonum/stat"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputSummary prints a single run as a two-column table
func (r *DefaultConsoleReporter) OutputSummary(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("TRACE RESULT")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Problem", s.Problem},
		{"Run", s.RunID},
		{"Seed", s.Seed},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Best Chromosome", "[" + strings.Join(s.BestChromosome, ", ") + "]"},
		{"Fitness", fmt.Sprintf("%d / %d", s.Fitness, s.FitnessThreshold)},
		{"Generations", fmt.Sprintf("%d / %d", s.PassedGenerations, s.GenerationThreshold)},
		{"Outcome", s.Outcome()},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Crowd", s.Crowd},
		{"Duration", s.Duration.Round(time.Microsecond).String()},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, WidthMax: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 60, Align: text.AlignLeft},
	})

	t.Render()
}

// OutputBatch prints one row per run followed by aggregate statistics
func (r *DefaultConsoleReporter) OutputBatch(w io.Writer, summaries []Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("BATCH OF %d RUNS", len(summaries)))
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Seed", "Fitness", "Generations", "Outcome", "Duration"})

	fitnesses := make([]float64, 0, len(summaries))
	generations := make([]float64, 0, len(summaries))
	reached := 0
	for i, s := range summaries {
		t.AppendRow(table.Row{i + 1, s.Seed, s.Fitness, s.PassedGenerations, s.Outcome(), s.Duration.Round(time.Microsecond).String()})
		fitnesses = append(fitnesses, float64(s.Fitness))
		generations = append(generations, float64(s.PassedGenerations))
		if s.Reached {
			reached++
		}
	}

	if len(summaries) > 0 {
		t.AppendFooter(table.Row{
			"",
			"mean",
			fmt.Sprintf("%.2f", stat.Mean(fitnesses, nil)),
			fmt.Sprintf("%.2f", stat.Mean(generations, nil)),
			fmt.Sprintf("%d/%d reached", reached, len(summaries)),
			"",
		})
	}

	t.Render()
}

// Package-level convenience function
func OutputConsole(w io.Writer, s Summary) {
	NewDefaultConsoleReporter().OutputSummary(w, s)
}
