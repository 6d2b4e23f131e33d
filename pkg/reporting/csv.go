package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteHistoryCSV writes one row per generation of the run
func (r *DefaultCSVReporter) WriteHistoryCSV(s Summary, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"Generation",
		"Best",
		"Worst",
		"Mean",
		"StdDev",
		"Elapsed_ms",
	}); err != nil {
		return err
	}

	for _, g := range s.History {
		row := []string{
			strconv.Itoa(g.Generation),
			strconv.Itoa(g.Best),
			strconv.Itoa(g.Worst),
			fmt.Sprintf("%.4f", g.Mean),
			fmt.Sprintf("%.4f", g.StdDev),
			fmt.Sprintf("%.3f", float64(g.Elapsed.Microseconds())/1000),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: run=%s; fitness=%d; generations=%d; outcome=%s",
		s.RunID, s.Fitness, s.PassedGenerations, s.Outcome())
	summaryRow := make([]string, 6)
	summaryRow[5] = summary
	if err := w.Write(summaryRow); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// Package-level convenience function
func WriteHistoryCSV(s Summary, path string) error {
	return NewDefaultCSVReporter().WriteHistoryCSV(s, path)
}
