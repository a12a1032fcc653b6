package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"farsight/internal/explore"
)

// WorkbookWriter writes the consolidated Excel analysis report.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write builds the workbook with one sheet per analysis stage and saves it
// to the given path.
func (w *WorkbookWriter) Write(results *AnalysisResults, path string) error {
	if results == nil {
		return fmt.Errorf("no results to save")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{"Summaries", SummaryHeaders, FormatSummaries(results.Summaries)},
		{"Frequencies", FrequencyHeaders, FormatFrequencies(results.Frequencies, sortedColumns(results.Frequencies))},
		{"Crosstab", CrosstabHeaders(results.Crosstab), FormatCrosstab(results.Crosstab)},
		{"Regression", RegressionHeaders, FormatRegression(results.Regression)},
		{"Coefficients", CoefficientHeaders, formatCoefficientsOf(results)},
		{"Clusters", ClusterHeaders(results.FeatureNames), FormatProfiles(results.Profiles)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote analysis workbook",
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))

	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func formatCoefficientsOf(results *AnalysisResults) [][]string {
	if results.Regression == nil {
		return nil
	}
	return FormatCoefficients(results.Regression.FullModel)
}

func sortedColumns(tables map[string][]explore.FrequencyRow) []string {
	columns := make([]string, 0, len(tables))
	for column := range tables {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
