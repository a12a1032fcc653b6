package explore

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"farsight/internal/errors"
)

// ColumnSummary holds descriptive statistics for one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for the named numeric columns.
// NaN values (unparseable cells) are excluded per column.
func Describe(ctx context.Context, logger *slog.Logger, df dataframe.DataFrame, columns []string) ([]ColumnSummary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if df.Nrow() == 0 {
		return nil, errors.ErrEmptyDataset
	}

	summaries := make([]ColumnSummary, 0, len(columns))
	for _, col := range columns {
		values := dropNaN(df.Col(col).Float())
		if len(values) == 0 {
			return nil, fmt.Errorf("column %s: %w", col, errors.ErrEmptyDataset)
		}

		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)

		mean, std := stat.MeanStdDev(values, nil)
		summaries = append(summaries, ColumnSummary{
			Column: col,
			Count:  len(values),
			Mean:   mean,
			StdDev: std,
			Min:    sorted[0],
			Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
			Max:    sorted[len(sorted)-1],
		})
	}

	logger.DebugContext(ctx, "computed column summaries",
		slog.Int("columns", len(summaries)),
		slog.Int("rows", df.Nrow()))

	return summaries, nil
}

// Correlation returns the Pearson correlation between two numeric columns.
func Correlation(df dataframe.DataFrame, colX, colY string) (float64, error) {
	x := df.Col(colX).Float()
	y := df.Col(colY).Float()
	if len(x) != len(y) || len(x) == 0 {
		return 0, errors.ErrEmptyDataset
	}

	// Pairwise deletion of NaN cells.
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0, errors.ErrInsufficientData
	}

	return stat.Correlation(xs, ys, nil), nil
}

func dropNaN(values []float64) []float64 {
	out := values[:0]
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
