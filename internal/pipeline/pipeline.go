// Package pipeline orchestrates the analysis stages end to end: merge,
// explore, feature engineering, regression, clustering, and reporting.
// Each stage is independently runnable from the CLI; intermediate state is
// exchanged through the combined dataset CSV under the reports directory.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"farsight/internal/charts"
	"farsight/internal/cluster"
	"farsight/internal/config"
	"farsight/internal/dataset"
	"farsight/internal/errors"
	"farsight/internal/explore"
	"farsight/internal/exporter"
	"farsight/internal/features"
	"farsight/internal/regress"
)

// Numeric columns described during exploration.
var describeColumns = []string{"AGE", "FATALS"}

// Label columns tabulated during exploration.
var frequencyColumns = []string{
	"REGION_LABEL", "RU_LABEL", "ROADFC_LABEL", "MANCOL_LABEL",
	"CRASH_TYPE_LABEL", "BODY_LABEL", "PTYPE_LABEL", "INJURY_LABEL",
	"AGE_BAND",
}

// Numeric feature columns fed to k-means.
var clusterFeatures = []string{
	"AGE", "FATALS", "F_SPEEDING", "F_ALCOHOL", "F_NIGHT",
	"F_WEEKEND", "F_ROLLOVER", "F_RESTRAINED",
}

// Pipeline wires the analysis stages to the configured paths.
type Pipeline struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
	csv    *exporter.CSVWriter
	charts *charts.Renderer
}

// New creates a pipeline over the given configuration.
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		paths:  paths,
		logger: logger,
		csv:    exporter.NewCSVWriter(logger),
		charts: charts.NewRenderer(paths, logger),
	}
}

// Merge loads the three source tables, joins and cleans them, adds the
// decoded label columns, and writes the combined dataset CSV.
func (p *Pipeline) Merge(ctx context.Context) (dataframe.DataFrame, error) {
	loader := dataset.NewLoader(p.paths, p.logger)
	tables, err := loader.Load(ctx)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load tables: %w", err)
	}

	merged, err := dataset.Merge(ctx, p.logger, tables)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("merge tables: %w", err)
	}

	cleaned, err := dataset.Clean(ctx, p.logger, merged)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("clean merged table: %w", err)
	}

	decorated := dataset.Decorate(cleaned)
	if decorated.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("decode labels: %w", decorated.Error())
	}

	records, validated, err := dataset.ValidRecords(ctx, p.logger, decorated)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("validate records: %w", err)
	}
	p.logger.InfoContext(ctx, "validated crash records", slog.Int("records", len(records)))

	if err := p.csv.WriteDataFrame(p.paths.CombinedCSV, validated); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("write combined dataset: %w", err)
	}

	return validated, nil
}

// LoadCombined reads the combined dataset written by a previous Merge (or
// Features) run.
func (p *Pipeline) LoadCombined(ctx context.Context) (dataframe.DataFrame, error) {
	file, err := os.Open(p.paths.CombinedCSV)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s (run merge first)",
				errors.ErrSourceNotFound, p.paths.CombinedCSV)
		}
		return dataframe.DataFrame{}, fmt.Errorf("open combined dataset: %w", err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file, dataframe.HasHeader(true))
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse combined dataset: %w", df.Error())
	}

	p.logger.InfoContext(ctx, "loaded combined dataset",
		slog.Int("rows", df.Nrow()),
		slog.Int("cols", df.Ncol()))

	return df, nil
}

// ExploreResult carries the outputs of the exploration stage.
type ExploreResult struct {
	Summaries      []explore.ColumnSummary
	Frequencies    map[string][]explore.FrequencyRow
	GroupMeans     map[string][]explore.GroupMeanRow
	AgeFatalsCorr  float64
	RegionCrosstab *explore.Crosstab
	Charts         []string
}

// Explore computes descriptive statistics, frequency tables, and group
// means, renders the exploratory charts, and writes the frequency CSV.
func (p *Pipeline) Explore(ctx context.Context, df dataframe.DataFrame) (*ExploreResult, error) {
	summaries, err := explore.Describe(ctx, p.logger, df, describeColumns)
	if err != nil {
		return nil, fmt.Errorf("describe columns: %w", err)
	}

	result := &ExploreResult{
		Summaries:   summaries,
		Frequencies: make(map[string][]explore.FrequencyRow),
		GroupMeans:  make(map[string][]explore.GroupMeanRow),
	}

	for _, column := range frequencyColumns {
		if !hasColumn(df, column) {
			continue
		}
		rows, err := explore.Frequencies(df, column)
		if err != nil {
			return nil, fmt.Errorf("frequencies of %s: %w", column, err)
		}
		result.Frequencies[column] = rows
	}

	means, err := explore.GroupMeans(df, "CRASH_TYPE_LABEL", "FATALS")
	if err != nil {
		return nil, fmt.Errorf("fatals by crash type: %w", err)
	}
	result.GroupMeans["CRASH_TYPE_LABEL"] = means

	corr, err := explore.Correlation(df, "AGE", "FATALS")
	if err != nil {
		return nil, fmt.Errorf("age/fatals correlation: %w", err)
	}
	result.AgeFatalsCorr = corr
	p.logger.InfoContext(ctx, "computed age/fatals correlation",
		slog.Float64("r", corr))

	crosstab, err := explore.BuildCrosstab(df, "RU_LABEL", "CRASH_TYPE_LABEL")
	if err != nil {
		return nil, fmt.Errorf("rural-urban by crash type crosstab: %w", err)
	}
	result.RegionCrosstab = crosstab

	if err := p.renderExploreCharts(ctx, df, result); err != nil {
		return nil, err
	}

	order := make([]string, 0, len(result.Frequencies))
	for _, column := range frequencyColumns {
		if _, ok := result.Frequencies[column]; ok {
			order = append(order, column)
		}
	}
	if err := p.csv.WriteSimpleCSV(p.paths.FrequenciesCSV, exporter.FrequencyHeaders,
		exporter.FormatFrequencies(result.Frequencies, order)); err != nil {
		return nil, fmt.Errorf("write frequency tables: %w", err)
	}

	return result, nil
}

func (p *Pipeline) renderExploreCharts(ctx context.Context, df dataframe.DataFrame, result *ExploreResult) error {
	chartSpecs := []struct {
		render func() (string, error)
	}{
		{func() (string, error) {
			return p.charts.Histogram(ctx, "age_histogram", "Age Distribution", df.Col("AGE").Float(), 16)
		}},
		{func() (string, error) {
			return p.charts.Histogram(ctx, "fatals_histogram", "Fatalities per Crash", df.Col("FATALS").Float(), 8)
		}},
		{func() (string, error) {
			return p.charts.FrequencyBar(ctx, "region_frequencies", "Crashes by Region", result.Frequencies["REGION_LABEL"])
		}},
		{func() (string, error) {
			return p.charts.FrequencyBar(ctx, "road_function_frequencies", "Crashes by Road Function", result.Frequencies["ROADFC_LABEL"])
		}},
		{func() (string, error) {
			return p.charts.GroupMeanBar(ctx, "fatals_by_crash_type", "Mean Fatalities by Crash Type", "Mean Fatalities", result.GroupMeans["CRASH_TYPE_LABEL"])
		}},
		{func() (string, error) {
			return p.charts.Scatter(ctx, "age_vs_fatals", "Occupant Age vs Fatalities", "AGE", "FATALS",
				df.Col("AGE").Float(), df.Col("FATALS").Float())
		}},
	}

	for _, spec := range chartSpecs {
		path, err := spec.render()
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		result.Charts = append(result.Charts, path)
	}
	return nil
}

// Features adds the engineered columns (age bands, involvement flags, and
// one-hot crash type indicators) and rewrites the combined dataset.
func (p *Pipeline) Features(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, []string, error) {
	engineered, err := features.Engineer(ctx, p.logger, df)
	if err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("engineer features: %w", err)
	}

	engineered, oneHot, err := features.OneHot(engineered, "CRASH_TYPE_LABEL")
	if err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("one-hot crash type: %w", err)
	}

	if err := p.csv.WriteDataFrame(p.paths.CombinedCSV, engineered); err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("write engineered dataset: %w", err)
	}

	return engineered, oneHot, nil
}

// regressionFeatures returns the model's feature columns: the involvement
// flags, age, and all but the first one-hot indicator (the dropped level
// is absorbed by the intercept).
func regressionFeatures(oneHot []string) []string {
	cols := append([]string{}, features.FlagColumns...)
	cols = append(cols, "AGE")
	if len(oneHot) > 1 {
		cols = append(cols, oneHot[1:]...)
	}
	return cols
}

// Regress fits the fatality model with k-fold cross-validation and writes
// the metrics and coefficient tables. When oneHot is nil (stage run from a
// reloaded dataset) the indicator columns are discovered by prefix.
func (p *Pipeline) Regress(ctx context.Context, df dataframe.DataFrame, oneHot []string) (*regress.CVResult, error) {
	if oneHot == nil {
		oneHot = columnsWithPrefix(df, "CRASH_TYPE_LABEL_")
	}
	cols := regressionFeatures(oneHot)

	X, y, err := regress.BuildDesign(df, cols, "FATALS")
	if err != nil {
		return nil, fmt.Errorf("build design matrix: %w", err)
	}

	cfg := regress.CVConfig{Folds: p.cfg.Analysis.CVFolds, Seed: p.cfg.Analysis.Seed}
	result, err := regress.CrossValidate(ctx, p.logger, X, y, cols, cfg)
	if err != nil {
		return nil, fmt.Errorf("cross-validate: %w", err)
	}

	if err := p.csv.WriteSimpleCSV(p.paths.RegressionCSV, exporter.RegressionHeaders,
		exporter.FormatRegression(result)); err != nil {
		return nil, fmt.Errorf("write regression metrics: %w", err)
	}

	return result, nil
}

// ClusterResult carries the outputs of the clustering stage.
type ClusterResult struct {
	ElbowPoints []cluster.ElbowPoint
	ChosenK     int
	Fit         *cluster.Result
	Profiles    []cluster.Profile
	Features    []string
}

// Cluster standardizes the numeric features, scans k for the elbow, fits
// k-means at the chosen k, and writes the cluster profiles and elbow chart.
func (p *Pipeline) Cluster(ctx context.Context, df dataframe.DataFrame) (*ClusterResult, error) {
	X, _, err := regress.BuildDesign(df, clusterFeatures, "FATALS")
	if err != nil {
		return nil, fmt.Errorf("build feature matrix: %w", err)
	}

	scaled, _ := cluster.Standardize(X)

	analysis := p.cfg.Analysis
	points, err := cluster.ElbowScan(ctx, p.logger, scaled, analysis.KMin, analysis.KMax, analysis.KMeansRuns)
	if err != nil {
		return nil, fmt.Errorf("elbow scan: %w", err)
	}
	chosenK := cluster.ChooseK(points)

	fit, err := cluster.Fit(ctx, p.logger, scaled, cluster.Config{K: chosenK, Runs: analysis.KMeansRuns})
	if err != nil {
		return nil, fmt.Errorf("fit k-means: %w", err)
	}

	profiles, err := cluster.Profiles(X, fit, clusterFeatures)
	if err != nil {
		return nil, fmt.Errorf("profile clusters: %w", err)
	}

	if _, err := p.charts.Elbow(ctx, "wcss_elbow", points, chosenK); err != nil {
		return nil, fmt.Errorf("render elbow chart: %w", err)
	}

	if err := p.csv.WriteSimpleCSV(p.paths.ClusterCSV, exporter.ClusterHeaders(clusterFeatures),
		exporter.FormatProfiles(profiles)); err != nil {
		return nil, fmt.Errorf("write cluster profiles: %w", err)
	}

	return &ClusterResult{
		ElbowPoints: points,
		ChosenK:     chosenK,
		Fit:         fit,
		Profiles:    profiles,
		Features:    clusterFeatures,
	}, nil
}

// Report runs the full pipeline and writes the consolidated outputs: the
// text summary and the Excel workbook.
func (p *Pipeline) Report(ctx context.Context) (*exporter.AnalysisResults, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Analysis.Timeout)
	defer cancel()

	start := time.Now()
	p.logger.InfoContext(ctx, "starting full analysis run")

	df, err := p.Merge(ctx)
	if err != nil {
		return nil, err
	}

	exploreResult, err := p.Explore(ctx, df)
	if err != nil {
		return nil, err
	}

	df, oneHot, err := p.Features(ctx, df)
	if err != nil {
		return nil, err
	}

	regression, err := p.Regress(ctx, df, oneHot)
	if err != nil {
		return nil, err
	}

	clustering, err := p.Cluster(ctx, df)
	if err != nil {
		return nil, err
	}

	results := &exporter.AnalysisResults{
		GeneratedAt:   time.Now(),
		Rows:          df.Nrow(),
		Summaries:     exploreResult.Summaries,
		Frequencies:   exploreResult.Frequencies,
		GroupMeans:    exploreResult.GroupMeans,
		AgeFatalsCorr: exploreResult.AgeFatalsCorr,
		Crosstab:      exploreResult.RegionCrosstab,
		Regression:    regression,
		ElbowPoints:   clustering.ElbowPoints,
		ChosenK:       clustering.ChosenK,
		Clustering:    clustering.Fit,
		Profiles:      clustering.Profiles,
		FeatureNames:  clustering.Features,
	}

	if err := exporter.WriteSummaryReport(results, p.paths.SummaryReport); err != nil {
		return nil, fmt.Errorf("write summary report: %w", err)
	}

	workbook := exporter.NewWorkbookWriter(p.logger)
	if err := workbook.Write(results, p.paths.Workbook); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	p.logger.InfoContext(ctx, "analysis run completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("rows", results.Rows),
		slog.Float64("regression_r2", regression.MeanR2),
		slog.Int("clusters", clustering.ChosenK))

	return results, nil
}

// columnsWithPrefix returns the dataframe's columns sharing a prefix, in
// name order.
func columnsWithPrefix(df dataframe.DataFrame, prefix string) []string {
	var cols []string
	for _, name := range df.Names() {
		if strings.HasPrefix(name, prefix) {
			cols = append(cols, name)
		}
	}
	sort.Strings(cols)
	return cols
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
