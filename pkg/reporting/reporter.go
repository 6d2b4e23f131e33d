package reporting

import (
	"io"
	"os"
	"path/filepath"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter rooted at outputRoot
func NewDefaultReporter(outputRoot string) *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		paths:   NewDefaultPathManager(outputRoot),
	}
}

// Console output methods
func (r *DefaultReporter) OutputSummary(w io.Writer, s Summary) {
	r.console.OutputSummary(w, s)
}

func (r *DefaultReporter) OutputBatch(w io.Writer, summaries []Summary) {
	r.console.OutputBatch(w, summaries)
}

// File output methods
func (r *DefaultReporter) WriteHistoryCSV(s Summary, path string) error {
	return r.csv.WriteHistoryCSV(s, path)
}

func (r *DefaultReporter) WriteSummariesXLSX(summaries []Summary, path string) error {
	return r.excel.WriteSummariesXLSX(summaries, path)
}

func (r *DefaultReporter) WriteSummaryJSON(s Summary, path string) error {
	return WriteSummaryJSON(s, path)
}

// Path management methods
func (r *DefaultReporter) GetDefaultOutputDir(problem string, crowd int) string {
	return r.paths.GetDefaultOutputDir(problem, crowd)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

var _ Reporter = (*DefaultReporter)(nil)

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter Reporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	if config.Console == nil {
		config.Console = os.Stdout
	}
	return &ReportingManager{
		reporter: NewDefaultReporter(config.OutputDirectory),
		config:   config,
	}
}

// OutputDir returns the directory files for the given summaries are written to
func (m *ReportingManager) OutputDir(s Summary) string {
	return m.reporter.GetDefaultOutputDir(s.Problem, s.Crowd)
}

// ReportRun outputs a single run according to configuration and returns the files written
func (m *ReportingManager) ReportRun(s Summary) ([]string, error) {
	if m.config.EnableConsole {
		m.reporter.OutputSummary(m.config.Console, s)
	}
	if !m.config.EnableFiles {
		return nil, nil
	}

	var written []string
	outputDir := m.OutputDir(s)

	if m.config.JSONEnabled {
		jsonPath := filepath.Join(outputDir, s.RunID+".json")
		if err := m.reporter.WriteSummaryJSON(s, jsonPath); err != nil {
			return written, err
		}
		written = append(written, jsonPath)
	}

	if m.config.CSVEnabled {
		csvPath := filepath.Join(outputDir, s.RunID+"_generations.csv")
		if err := m.reporter.WriteHistoryCSV(s, csvPath); err != nil {
			return written, err
		}
		written = append(written, csvPath)
	}

	if m.config.ExcelEnabled {
		xlsxPath := filepath.Join(outputDir, s.RunID+".xlsx")
		if err := m.reporter.WriteSummariesXLSX([]Summary{s}, xlsxPath); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}

	return written, nil
}

// ReportBatch outputs a batch of runs; per-run JSON/CSV plus one workbook covering the batch
func (m *ReportingManager) ReportBatch(summaries []Summary) ([]string, error) {
	if len(summaries) == 0 {
		return nil, nil
	}
	if m.config.EnableConsole {
		m.reporter.OutputBatch(m.config.Console, summaries)
	}
	if !m.config.EnableFiles {
		return nil, nil
	}

	var written []string
	outputDir := m.OutputDir(summaries[0])

	for _, s := range summaries {
		if m.config.JSONEnabled {
			jsonPath := filepath.Join(outputDir, s.RunID+".json")
			if err := m.reporter.WriteSummaryJSON(s, jsonPath); err != nil {
				return written, err
			}
			written = append(written, jsonPath)
		}
		if m.config.CSVEnabled {
			csvPath := filepath.Join(outputDir, s.RunID+"_generations.csv")
			if err := m.reporter.WriteHistoryCSV(s, csvPath); err != nil {
				return written, err
			}
			written = append(written, csvPath)
		}
	}

	if m.config.ExcelEnabled {
		xlsxPath := filepath.Join(outputDir, "batch.xlsx")
		if err := m.reporter.WriteSummariesXLSX(summaries, xlsxPath); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}

	return written, nil
}
