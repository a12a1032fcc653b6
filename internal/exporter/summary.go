package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteSummaryReport creates the plain-text summary of the analysis run.
func WriteSummaryReport(results *AnalysisResults, outputPath string) error {
	if results == nil || results.Rows == 0 {
		return fmt.Errorf("no results to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "FARS Crash Analysis - Summary Report\n")
	fmt.Fprintf(file, "====================================\n\n")
	fmt.Fprintf(file, "Generated: %s\n\n", results.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(file, "DATASET OVERVIEW\n")
	fmt.Fprintf(file, "----------------\n")
	fmt.Fprintf(file, "Joined Records: %d\n\n", results.Rows)

	if len(results.Summaries) > 0 {
		fmt.Fprintf(file, "NUMERIC SUMMARIES\n")
		fmt.Fprintf(file, "-----------------\n")
		for _, s := range results.Summaries {
			fmt.Fprintf(file, "%s - Count: %d, Mean: %.4f, StdDev: %.4f, Min: %.2f, Median: %.2f, Max: %.2f\n",
				s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
		}
		fmt.Fprintf(file, "AGE/FATALS correlation: %.4f\n", results.AgeFatalsCorr)
		fmt.Fprintln(file)
	}

	if results.Crosstab != nil {
		fmt.Fprintf(file, "CROSSTAB: %s x %s\n", results.Crosstab.RowColumn, results.Crosstab.ColColumn)
		fmt.Fprintf(file, "--------\n")
		for _, rowLabel := range results.Crosstab.RowLabels {
			fmt.Fprintf(file, "%s:", rowLabel)
			for _, colLabel := range results.Crosstab.ColLabels {
				fmt.Fprintf(file, " %s=%d", colLabel, results.Crosstab.Counts[rowLabel][colLabel])
			}
			fmt.Fprintln(file)
		}
		fmt.Fprintln(file)
	}

	if len(results.Frequencies) > 0 {
		fmt.Fprintf(file, "TOP CATEGORIES\n")
		fmt.Fprintf(file, "--------------\n")
		columns := make([]string, 0, len(results.Frequencies))
		for column := range results.Frequencies {
			columns = append(columns, column)
		}
		sort.Strings(columns)
		for _, column := range columns {
			rows := results.Frequencies[column]
			limit := 3
			if len(rows) < limit {
				limit = len(rows)
			}
			fmt.Fprintf(file, "%s:", column)
			for i := 0; i < limit; i++ {
				fmt.Fprintf(file, " %s (%.1f%%)", rows[i].Label, rows[i].Share*100)
			}
			fmt.Fprintln(file)
		}
		fmt.Fprintln(file)
	}

	if results.Regression != nil {
		fmt.Fprintf(file, "LINEAR REGRESSION (k-fold cross-validation)\n")
		fmt.Fprintf(file, "-------------------------------------------\n")
		fmt.Fprintf(file, "Folds: %d\n", len(results.Regression.FoldMetrics))
		fmt.Fprintf(file, "Mean R2: %.4f\n", results.Regression.MeanR2)
		fmt.Fprintf(file, "Mean RMSE: %.4f\n", results.Regression.MeanRMSE)
		fmt.Fprintf(file, "Mean MAE: %.4f\n", results.Regression.MeanMAE)
		if model := results.Regression.FullModel; model != nil {
			fmt.Fprintf(file, "Intercept: %.4f\n", model.Intercept)
			for i, name := range model.FeatureNames {
				fmt.Fprintf(file, "  %s: %+.4f\n", name, model.Coefficients[i])
			}
		}
		fmt.Fprintln(file)
	}

	if results.Clustering != nil {
		fmt.Fprintf(file, "K-MEANS CLUSTERING\n")
		fmt.Fprintf(file, "------------------\n")
		fmt.Fprintf(file, "Chosen k: %d (elbow scan over %d candidates)\n",
			results.ChosenK, len(results.ElbowPoints))
		fmt.Fprintf(file, "WCSS: %.4f\n", results.Clustering.WCSS)
		for _, p := range results.Profiles {
			fmt.Fprintf(file, "Cluster %d: %d records (%.1f%%)\n", p.Cluster, p.Size, p.Share*100)
		}
	}

	return nil
}
