package cluster

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// ElbowPoint is one (k, WCSS) observation of the elbow scan.
type ElbowPoint struct {
	K    int     `json:"k"`
	WCSS float64 `json:"wcss"`
}

// ElbowScan fits k-means for every k in [kMin, kMax] and records the
// within-cluster sum of squares at each k.
func ElbowScan(ctx context.Context, logger *slog.Logger, X *mat.Dense, kMin, kMax, runs int) ([]ElbowPoint, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if kMin < 1 || kMin > kMax {
		return nil, fmt.Errorf("invalid k range [%d, %d]", kMin, kMax)
	}

	points := make([]ElbowPoint, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		result, err := Fit(ctx, logger, X, Config{K: k, Runs: runs})
		if err != nil {
			return nil, fmt.Errorf("elbow scan at k=%d: %w", k, err)
		}
		points = append(points, ElbowPoint{K: k, WCSS: result.WCSS})
	}

	logger.InfoContext(ctx, "completed elbow scan",
		slog.Int("k_min", kMin),
		slog.Int("k_max", kMax),
		slog.Int("points", len(points)))

	return points, nil
}

// ChooseK picks the elbow of the WCSS curve: the k whose drop in WCSS is
// followed by the steepest flattening (largest second difference). With
// fewer than three points the smallest k wins.
func ChooseK(points []ElbowPoint) int {
	if len(points) == 0 {
		return 0
	}
	if len(points) < 3 {
		return points[0].K
	}

	bestK := points[1].K
	bestBend := 0.0
	for i := 1; i < len(points)-1; i++ {
		dropBefore := points[i-1].WCSS - points[i].WCSS
		dropAfter := points[i].WCSS - points[i+1].WCSS
		bend := dropBefore - dropAfter
		if bend > bestBend {
			bestBend = bend
			bestK = points[i].K
		}
	}
	return bestK
}
