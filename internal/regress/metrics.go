package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds goodness-of-fit measures for one evaluation.
type Metrics struct {
	RSquared float64 `json:"r_squared"`
	RMSE     float64 `json:"rmse"`
	MAE      float64 `json:"mae"`
	N        int     `json:"n"`
}

// Evaluate computes R², RMSE, and MAE of predictions against observations.
func Evaluate(observed, predicted []float64) Metrics {
	n := len(observed)
	if n == 0 || len(predicted) != n {
		return Metrics{}
	}

	mean := stat.Mean(observed, nil)
	var ssRes, ssTot, absSum float64
	for i := range observed {
		resid := observed[i] - predicted[i]
		ssRes += resid * resid
		absSum += math.Abs(resid)
		dev := observed[i] - mean
		ssTot += dev * dev
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return Metrics{
		RSquared: r2,
		RMSE:     math.Sqrt(ssRes / float64(n)),
		MAE:      absSum / float64(n),
		N:        n,
	}
}
