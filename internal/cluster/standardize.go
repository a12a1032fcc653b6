package cluster

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scale holds the standardization parameters of one feature column.
type Scale struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Standardize z-scores each column of X and returns the scaled copy along
// with the per-column parameters. Constant columns (zero variance) are
// centered only, so they do not blow up the distance metric.
func Standardize(X *mat.Dense) (*mat.Dense, []Scale) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, cols, nil)
	scales := make([]Scale, cols)

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		mean, std := stat.MeanStdDev(col, nil)
		scales[j] = Scale{Mean: mean, StdDev: std}

		for i := 0; i < rows; i++ {
			v := col[i] - mean
			if std > 0 {
				v /= std
			}
			out.Set(i, j, v)
		}
	}

	return out, scales
}
