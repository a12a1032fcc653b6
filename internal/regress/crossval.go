package regress

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"farsight/internal/errors"
)

// CVConfig configures k-fold cross-validation.
type CVConfig struct {
	Folds int   // number of folds, at least 2
	Seed  int64 // shuffle seed for reproducible partitions
}

// DefaultCVConfig returns the standard 5-fold configuration.
func DefaultCVConfig() CVConfig {
	return CVConfig{Folds: 5, Seed: 1}
}

// CVResult holds per-fold and aggregate cross-validation metrics plus the
// model refit on the full dataset.
type CVResult struct {
	FoldMetrics []Metrics `json:"fold_metrics"`
	MeanR2      float64   `json:"mean_r2"`
	MeanRMSE    float64   `json:"mean_rmse"`
	MeanMAE     float64   `json:"mean_mae"`
	FullModel   *Model    `json:"full_model"`
}

// CrossValidate shuffles the observations, partitions them into k folds,
// fits on k-1 folds and evaluates on the held-out fold, then refits on all
// rows for the reported coefficient table.
func CrossValidate(ctx context.Context, logger *slog.Logger, X *mat.Dense, y []float64, names []string, cfg CVConfig) (*CVResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Folds < 2 {
		return nil, fmt.Errorf("cross-validation needs at least 2 folds, got %d", cfg.Folds)
	}

	rows, cols := X.Dims()
	if rows < cfg.Folds*(cols+2) {
		return nil, fmt.Errorf("%w: %d rows for %d-fold validation of %d features",
			errors.ErrInsufficientData, rows, cfg.Folds, cols)
	}

	logger.InfoContext(ctx, "starting cross-validation",
		slog.Int("rows", rows),
		slog.Int("features", cols),
		slog.Int("folds", cfg.Folds))

	// Shuffled index partition; every row lands in exactly one fold.
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(rows)

	folds := make([][]int, cfg.Folds)
	for i, idx := range perm {
		f := i % cfg.Folds
		folds[f] = append(folds[f], idx)
	}

	result := &CVResult{FoldMetrics: make([]Metrics, 0, cfg.Folds)}
	for f := 0; f < cfg.Folds; f++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("cross-validation cancelled: %w", ctx.Err())
		default:
		}

		holdout := folds[f]
		train := make([]int, 0, rows-len(holdout))
		for g := 0; g < cfg.Folds; g++ {
			if g != f {
				train = append(train, folds[g]...)
			}
		}

		trainX, trainY := subset(X, y, train)
		model, err := Fit(trainX, trainY, names)
		if err != nil {
			return nil, fmt.Errorf("fit fold %d: %w", f, err)
		}

		testX, testY := subset(X, y, holdout)
		metrics := Evaluate(testY, model.PredictAll(testX))
		result.FoldMetrics = append(result.FoldMetrics, metrics)

		logger.DebugContext(ctx, "evaluated fold",
			slog.Int("fold", f),
			slog.Float64("r2", metrics.RSquared),
			slog.Float64("rmse", metrics.RMSE))
	}

	for _, m := range result.FoldMetrics {
		result.MeanR2 += m.RSquared
		result.MeanRMSE += m.RMSE
		result.MeanMAE += m.MAE
	}
	k := float64(cfg.Folds)
	result.MeanR2 /= k
	result.MeanRMSE /= k
	result.MeanMAE /= k

	full, err := Fit(X, y, names)
	if err != nil {
		return nil, fmt.Errorf("fit full model: %w", err)
	}
	result.FullModel = full

	logger.InfoContext(ctx, "cross-validation completed",
		slog.Float64("mean_r2", result.MeanR2),
		slog.Float64("mean_rmse", result.MeanRMSE),
		slog.Float64("mean_mae", result.MeanMAE))

	return result, nil
}

// subset extracts the given rows of X and y into fresh storage.
func subset(X *mat.Dense, y []float64, rows []int) (*mat.Dense, []float64) {
	_, cols := X.Dims()
	outX := mat.NewDense(len(rows), cols, nil)
	outY := make([]float64, len(rows))
	for i, r := range rows {
		for j := 0; j < cols; j++ {
			outX.Set(i, j, X.At(r, j))
		}
		outY[i] = y[r]
	}
	return outX, outY
}
