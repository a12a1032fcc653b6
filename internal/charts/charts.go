// Package charts renders the exploratory plots as PNG files using
// gonum/plot: value histograms, categorical bar charts, scatter plots, and
// the k-means elbow curve.
package charts

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"farsight/internal/cluster"
	"farsight/internal/config"
	"farsight/internal/errors"
	"farsight/internal/explore"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// Renderer writes charts into the configured charts directory.
type Renderer struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewRenderer creates a chart renderer.
func NewRenderer(paths *config.Paths, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{paths: paths, logger: logger}
}

// Histogram renders a value histogram with the given number of bins.
func (r *Renderer) Histogram(ctx context.Context, name, title string, values []float64, bins int) (string, error) {
	if len(values) == 0 {
		return "", errors.ErrEmptyDataset
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return "", fmt.Errorf("build histogram: %w", err)
	}
	p.Add(hist)

	return r.save(ctx, p, name)
}

// FrequencyBar renders a bar chart of a categorical frequency table.
func (r *Renderer) FrequencyBar(ctx context.Context, name, title string, rows []explore.FrequencyRow) (string, error) {
	if len(rows) == 0 {
		return "", errors.ErrEmptyDataset
	}

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = float64(row.Count)
		labels[i] = row.Label
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.9

	return r.save(ctx, p, name)
}

// GroupMeanBar renders a bar chart of group means.
func (r *Renderer) GroupMeanBar(ctx context.Context, name, title, yLabel string, rows []explore.GroupMeanRow) (string, error) {
	if len(rows) == 0 {
		return "", errors.ErrEmptyDataset
	}

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Mean
		labels[i] = row.Label
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.9

	return r.save(ctx, p, name)
}

// Elbow renders the WCSS-versus-k curve from an elbow scan, marking the
// chosen k with a scatter point.
func (r *Renderer) Elbow(ctx context.Context, name string, points []cluster.ElbowPoint, chosenK int) (string, error) {
	if len(points) == 0 {
		return "", errors.ErrEmptyDataset
	}

	xys := make(plotter.XYs, len(points))
	var chosen plotter.XYs
	for i, pt := range points {
		xys[i].X = float64(pt.K)
		xys[i].Y = pt.WCSS
		if pt.K == chosenK {
			chosen = plotter.XYs{{X: float64(pt.K), Y: pt.WCSS}}
		}
	}

	p := plot.New()
	p.Title.Text = "Within-Cluster Sum of Squares by k"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "WCSS"

	line, pointsPlot, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", fmt.Errorf("build elbow curve: %w", err)
	}
	p.Add(line, pointsPlot)

	if len(chosen) > 0 {
		marker, err := plotter.NewScatter(chosen)
		if err != nil {
			return "", fmt.Errorf("build elbow marker: %w", err)
		}
		marker.GlyphStyle.Radius = vg.Points(5)
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("chosen k=%d", chosenK), marker)
	}

	return r.save(ctx, p, name)
}

// Scatter renders a two-dimensional scatter plot.
func (r *Renderer) Scatter(ctx context.Context, name, title, xLabel, yLabel string, x, y []float64) (string, error) {
	if len(x) == 0 || len(x) != len(y) {
		return "", errors.ErrEmptyDataset
	}

	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X = x[i]
		xys[i].Y = y[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return "", fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	return r.save(ctx, p, name)
}

// save writes the plot as a PNG into the charts directory.
func (r *Renderer) save(ctx context.Context, p *plot.Plot, name string) (string, error) {
	path := r.paths.ChartFile(name)
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", fmt.Errorf("save chart %s: %w", path, err)
	}

	r.logger.InfoContext(ctx, "rendered chart",
		slog.String("chart", name),
		slog.String("path", path))

	return path, nil
}
