package regress

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"farsight/internal/errors"
)

// BuildDesign extracts the feature columns and the target column from the
// engineered table into a dense matrix and target slice. Rows containing
// NaN in any selected column are dropped.
func BuildDesign(df dataframe.DataFrame, features []string, target string) (*mat.Dense, []float64, error) {
	n := df.Nrow()
	if n == 0 {
		return nil, nil, errors.ErrEmptyDataset
	}

	cols := make([][]float64, len(features))
	for j, name := range features {
		col := df.Col(name)
		if col.Err != nil {
			return nil, nil, fmt.Errorf("feature column %s: %w", name, col.Err)
		}
		cols[j] = col.Float()
	}

	targetCol := df.Col(target)
	if targetCol.Err != nil {
		return nil, nil, fmt.Errorf("target column %s: %w", target, targetCol.Err)
	}
	y := targetCol.Float()

	data := make([]float64, 0, n*len(features))
	outY := make([]float64, 0, n)
rowLoop:
	for i := 0; i < n; i++ {
		if math.IsNaN(y[i]) {
			continue
		}
		for j := range cols {
			if math.IsNaN(cols[j][i]) {
				continue rowLoop
			}
		}
		for j := range cols {
			data = append(data, cols[j][i])
		}
		outY = append(outY, y[i])
	}

	rows := len(outY)
	if rows == 0 {
		return nil, nil, errors.ErrEmptyDataset
	}

	return mat.NewDense(rows, len(features), data), outY, nil
}
