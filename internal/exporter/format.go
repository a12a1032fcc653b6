package exporter

import (
	"strconv"
	"time"

	"farsight/internal/cluster"
	"farsight/internal/explore"
	"farsight/internal/regress"
)

// AnalysisResults bundles everything the report writers consume.
type AnalysisResults struct {
	GeneratedAt time.Time
	Rows        int

	Summaries     []explore.ColumnSummary
	Frequencies   map[string][]explore.FrequencyRow
	GroupMeans    map[string][]explore.GroupMeanRow
	AgeFatalsCorr float64
	Crosstab      *explore.Crosstab

	Regression   *regress.CVResult
	ElbowPoints  []cluster.ElbowPoint
	ChosenK      int
	Clustering   *cluster.Result
	Profiles     []cluster.Profile
	FeatureNames []string
}

// RegressionHeaders is the column layout of the regression metrics CSV.
var RegressionHeaders = []string{"Fold", "R2", "RMSE", "MAE", "N"}

// FormatRegression lays out per-fold metrics followed by the aggregate row.
func FormatRegression(result *regress.CVResult) [][]string {
	if result == nil {
		return nil
	}

	rows := make([][]string, 0, len(result.FoldMetrics)+1)
	for i, m := range result.FoldMetrics {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatFloat(m.RSquared),
			formatFloat(m.RMSE),
			formatFloat(m.MAE),
			strconv.Itoa(m.N),
		})
	}
	rows = append(rows, []string{
		"mean",
		formatFloat(result.MeanR2),
		formatFloat(result.MeanRMSE),
		formatFloat(result.MeanMAE),
		"",
	})
	return rows
}

// CoefficientHeaders is the column layout of the coefficient table.
var CoefficientHeaders = []string{"Feature", "Coefficient"}

// FormatCoefficients lays out the intercept and fitted coefficients.
func FormatCoefficients(model *regress.Model) [][]string {
	if model == nil {
		return nil
	}

	rows := make([][]string, 0, len(model.Coefficients)+1)
	rows = append(rows, []string{"(intercept)", formatFloat(model.Intercept)})
	for i, name := range model.FeatureNames {
		rows = append(rows, []string{name, formatFloat(model.Coefficients[i])})
	}
	return rows
}

// ClusterHeaders builds the column layout of the cluster profile CSV for
// the given feature names.
func ClusterHeaders(featureNames []string) []string {
	headers := []string{"Cluster", "Size", "Share"}
	for _, name := range featureNames {
		headers = append(headers, "Mean_"+name)
	}
	return headers
}

// FormatProfiles lays out per-cluster sizes and feature means.
func FormatProfiles(profiles []cluster.Profile) [][]string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		row := []string{
			strconv.Itoa(p.Cluster),
			strconv.Itoa(p.Size),
			formatFloat(p.Share),
		}
		for _, mean := range p.FeatureMeans {
			row = append(row, formatFloat(mean))
		}
		rows = append(rows, row)
	}
	return rows
}

// FrequencyHeaders is the column layout of the frequency tables CSV.
var FrequencyHeaders = []string{"Column", "Label", "Count", "Share"}

// FormatFrequencies flattens the per-column frequency tables into one
// CSV-ready layout, keyed by column name.
func FormatFrequencies(tables map[string][]explore.FrequencyRow, order []string) [][]string {
	var rows [][]string
	for _, column := range order {
		for _, fr := range tables[column] {
			rows = append(rows, []string{
				column,
				fr.Label,
				strconv.Itoa(fr.Count),
				formatFloat(fr.Share),
			})
		}
	}
	return rows
}

// CrosstabHeaders builds the column layout of a contingency table: the row
// column name followed by one column per category.
func CrosstabHeaders(ct *explore.Crosstab) []string {
	if ct == nil {
		return nil
	}
	return append([]string{ct.RowColumn}, ct.ColLabels...)
}

// FormatCrosstab lays out the contingency table counts, one row per row
// label in sorted order.
func FormatCrosstab(ct *explore.Crosstab) [][]string {
	if ct == nil {
		return nil
	}

	rows := make([][]string, 0, len(ct.RowLabels))
	for _, rowLabel := range ct.RowLabels {
		row := []string{rowLabel}
		for _, colLabel := range ct.ColLabels {
			row = append(row, strconv.Itoa(ct.Counts[rowLabel][colLabel]))
		}
		rows = append(rows, row)
	}
	return rows
}

// SummaryHeaders is the column layout of the describe table.
var SummaryHeaders = []string{"Column", "Count", "Mean", "StdDev", "Min", "Q1", "Median", "Q3", "Max"}

// FormatSummaries lays out the descriptive statistics table.
func FormatSummaries(summaries []explore.ColumnSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Column,
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Q1),
			formatFloat(s.Median),
			formatFloat(s.Q3),
			formatFloat(s.Max),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
