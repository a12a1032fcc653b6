package charts

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farsight/internal/cluster"
	"farsight/internal/config"
	"farsight/internal/errors"
	"farsight/internal/explore"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()

	paths, err := config.NewPaths(config.PathsConfig{
		BaseDir:    t.TempDir(),
		DataDir:    "data",
		ReportsDir: "reports",
		ChartsDir:  "charts",
		LogsDir:    "logs",
	})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	return NewRenderer(paths, nil)
}

// assertPNG checks that the renderer produced a non-empty PNG file.
func assertPNG(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestHistogram(t *testing.T) {
	r := testRenderer(t)

	values := []float64{18, 22, 25, 31, 34, 40, 41, 55, 60, 72}
	path, err := r.Histogram(context.Background(), "age_histogram", "Age Distribution", values, 5)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestHistogram_Empty(t *testing.T) {
	r := testRenderer(t)
	_, err := r.Histogram(context.Background(), "empty", "Empty", nil, 5)
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}

func TestFrequencyBar(t *testing.T) {
	r := testRenderer(t)

	rows := []explore.FrequencyRow{
		{Label: "Rural", Count: 60, Share: 0.6},
		{Label: "Urban", Count: 40, Share: 0.4},
	}
	path, err := r.FrequencyBar(context.Background(), "region_frequencies", "Crashes by Region", rows)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestGroupMeanBar(t *testing.T) {
	r := testRenderer(t)

	rows := []explore.GroupMeanRow{
		{Label: "Single-Vehicle", Mean: 1.2, Count: 50},
		{Label: "Two-Vehicle", Mean: 1.6, Count: 30},
	}
	path, err := r.GroupMeanBar(context.Background(), "fatals_by_crash_type", "Mean Fatalities", "Mean FATALS", rows)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestElbow(t *testing.T) {
	r := testRenderer(t)

	points := []cluster.ElbowPoint{
		{K: 2, WCSS: 400},
		{K: 3, WCSS: 250},
		{K: 4, WCSS: 230},
	}
	path, err := r.Elbow(context.Background(), "wcss_elbow", points, 3)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestScatter(t *testing.T) {
	r := testRenderer(t)

	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	path, err := r.Scatter(context.Background(), "age_vs_fatals", "Age vs Fatalities", "AGE", "FATALS", x, y)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestScatter_LengthMismatch(t *testing.T) {
	r := testRenderer(t)
	_, err := r.Scatter(context.Background(), "bad", "Bad", "x", "y", []float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}
