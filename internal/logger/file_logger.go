package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
)

// Logger is a session file logger for genetic trace runs
type Logger struct {
	problem string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logPath string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo       LogLevel = "INFO"
	LogLevelWarning    LogLevel = "WARN"
	LogLevelError      LogLevel = "ERROR"
	LogLevelGeneration LogLevel = "GEN"
	LogLevelRun        LogLevel = "RUN"
)

const timeLayout = "2006-01-02 15:04:05"

// NewLogger creates a file logger for the given problem under logDir ("logs" when empty)
func NewLogger(logDir, problem string) (*Logger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", problem, time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		problem: problem,
		logFile: file,
		logger:  log.New(file, "", 0),
		logPath: logPath,
	}
	l.writeSessionHeader()

	return l, nil
}

// NewWriterLogger creates a logger that writes to w and owns no file
func NewWriterLogger(w io.Writer, problem string) *Logger {
	l := &Logger{
		problem: problem,
		logger:  log.New(w, "", 0),
	}
	l.writeSessionHeader()
	return l
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
GENETIC TRACE SESSION STARTED
================================================================================
Problem: %s
Started: %s
================================================================================
`, l.problem, time.Now().Format(timeLayout))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s", time.Now().Format(timeLayout), level, message)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// LogGeneration logs the statistics of one generation
func (l *Logger) LogGeneration(runID string, stats genetic.GenerationStats) {
	l.Log(LogLevelGeneration, "run=%s gen=%d best=%d worst=%d mean=%.2f std=%.2f elapsed=%s",
		runID, stats.Generation, stats.Best, stats.Worst, stats.Mean, stats.StdDev, stats.Elapsed.Round(time.Microsecond))
}

// LogRunStarted logs the parameters a run was started with
func (l *Logger) LogRunStarted(runID string, seed int64, crowd, fitnessThreshold, generationThreshold int) {
	l.Log(LogLevelRun, "run=%s started seed=%d crowd=%d fitness_threshold=%d generation_threshold=%d",
		runID, seed, crowd, fitnessThreshold, generationThreshold)
}

// LogRunFinished logs the outcome of a run
func (l *Logger) LogRunFinished(runID string, fitness, generations int, reached bool, duration time.Duration) {
	outcome := "exhausted"
	if reached {
		outcome = "reached"
	}
	l.Log(LogLevelRun, "run=%s finished fitness=%d generations=%d outcome=%s duration=%s",
		runID, fitness, generations, outcome, duration.Round(time.Microsecond))
}

// Close writes the session footer and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	footer := fmt.Sprintf(`
================================================================================
GENETIC TRACE SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format(timeLayout))
	l.logger.Print(footer)

	if l.logFile != nil {
		err := l.logFile.Close()
		l.logFile = nil
		return err
	}
	return nil
}

// GetLogPath returns the current log file path, empty for writer loggers
func (l *Logger) GetLogPath() string {
	return l.logPath
}
