package reporting

import "io"

// Package reporting provides output generation for genetic trace runs

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputSummary(w io.Writer, summary Summary)
	OutputBatch(w io.Writer, summaries []Summary)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteHistoryCSV(summary Summary, path string) error
	WriteSummariesXLSX(summaries []Summary, path string) error
	WriteSummaryJSON(summary Summary, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(problem string, crowd int) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	BaseStyle    int
	NumberStyle  int
	ReachedStyle int
	MissedStyle  int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	EnableFiles     bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
	Console         io.Writer
}
