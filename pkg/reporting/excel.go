package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	generationsSheet = "Generations"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteSummariesXLSX writes one summary row per run and the per-generation history of every run
func (r *DefaultExcelReporter) WriteSummariesXLSX(summaries []Summary, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	// Replace default sheet and create the history sheet
	if err := fx.SetSheetName(fx.GetSheetName(0), summarySheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(generationsSheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summaries, styles); err != nil {
		return err
	}
	if err := r.writeGenerationsSheet(fx, summaries, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - Dark slate background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    lightBorder,
	})
	if err != nil {
		return styles, err
	}

	// Two decimals, right aligned
	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    2,
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.ReachedStyle, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "008000"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.MissedStyle, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FF0000"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    lightBorder,
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeHeaders(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, summaries []Summary, styles ExcelStyles) error {
	headers := []string{"Run", "Problem", "Seed", "Crowd", "Fitness", "Fitness Threshold",
		"Generations", "Generation Threshold", "Outcome", "Duration (ms)", "Best Chromosome"}
	if err := r.writeHeaders(fx, summarySheet, headers, styles); err != nil {
		return err
	}

	_ = fx.SetColWidth(summarySheet, "A", "A", 38)
	_ = fx.SetColWidth(summarySheet, "B", "J", 14)
	_ = fx.SetColWidth(summarySheet, "K", "K", 60)

	for i, s := range summaries {
		row := i + 2
		values := []interface{}{
			s.RunID,
			s.Problem,
			s.Seed,
			s.Crowd,
			s.Fitness,
			s.FitnessThreshold,
			s.PassedGenerations,
			s.GenerationThreshold,
			strings.ToUpper(s.Outcome()),
			float64(s.Duration.Microseconds()) / 1000,
			strings.Join(s.BestChromosome, " "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := fx.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
			style := styles.BaseStyle
			switch col {
			case 8:
				style = styles.MissedStyle
				if s.Reached {
					style = styles.ReachedStyle
				}
			case 9:
				style = styles.NumberStyle
			}
			if err := fx.SetCellStyle(summarySheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DefaultExcelReporter) writeGenerationsSheet(fx *excelize.File, summaries []Summary, styles ExcelStyles) error {
	headers := []string{"Run", "Generation", "Best", "Worst", "Mean", "StdDev"}
	if err := r.writeHeaders(fx, generationsSheet, headers, styles); err != nil {
		return err
	}
	_ = fx.SetColWidth(generationsSheet, "A", "A", 38)
	_ = fx.SetColWidth(generationsSheet, "B", "F", 12)

	row := 2
	for _, s := range summaries {
		for _, g := range s.History {
			values := []interface{}{s.RunID, g.Generation, g.Best, g.Worst, g.Mean, g.StdDev}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := fx.SetCellValue(generationsSheet, cell, v); err != nil {
					return err
				}
				style := styles.BaseStyle
				if col >= 4 {
					style = styles.NumberStyle
				}
				if err := fx.SetCellStyle(generationsSheet, cell, cell, style); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

// Package-level convenience function
func WriteSummariesXLSX(summaries []Summary, path string) error {
	return NewDefaultExcelReporter().WriteSummariesXLSX(summaries, path)
}
