package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FormatSummary formats a summary as indented JSON bytes
func FormatSummary(s Summary) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// PrintSummaryJSON prints a summary as JSON
func PrintSummaryJSON(w io.Writer, s Summary) error {
	data, err := FormatSummary(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteSummaryJSON writes a summary to a JSON file
func WriteSummaryJSON(s Summary, path string) error {
	data, err := FormatSummary(s)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// ReadSummaryJSON loads a summary written by WriteSummaryJSON
func ReadSummaryJSON(path string) (Summary, error) {
	var s Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse summary %s: %w", path, err)
	}
	return s, nil
}
