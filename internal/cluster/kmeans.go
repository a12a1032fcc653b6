package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/mat"

	"farsight/internal/errors"
)

// Config controls the k-means fit.
type Config struct {
	K    int // number of clusters
	Runs int // independent restarts; best WCSS wins
}

// DefaultConfig returns the standard configuration for k clusters.
func DefaultConfig(k int) Config {
	return Config{K: k, Runs: 10}
}

// Result is a fitted clustering.
type Result struct {
	K           int         `json:"k"`
	Assignments []int       `json:"assignments"`
	Centers     [][]float64 `json:"centers"`
	Sizes       []int       `json:"sizes"`
	WCSS        float64     `json:"wcss"`
}

// Fit partitions the rows of X into cfg.K clusters, repeating the fit
// cfg.Runs times and keeping the partition with the lowest within-cluster
// sum of squares.
func Fit(ctx context.Context, logger *slog.Logger, X *mat.Dense, cfg Config) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.ErrEmptyDataset
	}
	if cfg.K < 1 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", cfg.K)
	}
	if rows < cfg.K {
		return nil, fmt.Errorf("%w: %d rows for k=%d", errors.ErrInsufficientData, rows, cfg.K)
	}
	if cfg.Runs < 1 {
		cfg.Runs = 1
	}

	observations := toObservations(X)

	var best *Result
	for run := 0; run < cfg.Runs; run++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("clustering cancelled: %w", ctx.Err())
		default:
		}

		km := kmeans.New()
		partition, err := km.Partition(observations, cfg.K)
		if err != nil {
			return nil, fmt.Errorf("k-means partition (k=%d): %w", cfg.K, err)
		}

		result := summarize(partition, observations, cfg.K)
		if best == nil || result.WCSS < best.WCSS {
			best = result
		}
	}

	logger.InfoContext(ctx, "fitted k-means",
		slog.Int("k", cfg.K),
		slog.Int("rows", rows),
		slog.Int("runs", cfg.Runs),
		slog.Float64("wcss", best.WCSS))

	return best, nil
}

// toObservations converts matrix rows into the clustering library's
// observation type.
func toObservations(X *mat.Dense) clusters.Observations {
	rows, cols := X.Dims()
	observations := make(clusters.Observations, rows)
	for i := 0; i < rows; i++ {
		point := make(clusters.Coordinates, cols)
		for j := 0; j < cols; j++ {
			point[j] = X.At(i, j)
		}
		observations[i] = point
	}
	return observations
}

// summarize derives assignments, centers, sizes, and WCSS from a partition.
// Assignments are recovered by nearest-center lookup so they align with the
// original row order.
func summarize(partition clusters.Clusters, observations clusters.Observations, k int) *Result {
	result := &Result{
		K:           k,
		Assignments: make([]int, len(observations)),
		Centers:     make([][]float64, len(partition)),
		Sizes:       make([]int, len(partition)),
	}

	for c, cl := range partition {
		center := make([]float64, len(cl.Center))
		copy(center, cl.Center)
		result.Centers[c] = center
	}

	var wcss float64
	for i, obs := range observations {
		c := partition.Nearest(obs)
		result.Assignments[i] = c
		result.Sizes[c]++
		wcss += distSq(obs.Coordinates(), partition[c].Center)
	}
	result.WCSS = wcss

	return result
}

func distSq(a, b clusters.Coordinates) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	if math.IsNaN(sum) {
		return 0
	}
	return sum
}
