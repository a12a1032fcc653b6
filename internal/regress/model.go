package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"farsight/internal/errors"
)

// Model is a fitted ordinary least squares model.
type Model struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	FeatureNames []string  `json:"feature_names"`
}

// Fit solves the least squares problem y = Xb + e with an intercept term.
// X has one row per observation and one column per feature; names labels
// the columns for reporting.
func Fit(X mat.Matrix, y []float64, names []string) (*Model, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.ErrEmptyDataset
	}
	if len(y) != rows {
		return nil, fmt.Errorf("target length %d does not match %d rows", len(y), rows)
	}
	if rows <= cols+1 {
		return nil, fmt.Errorf("%w: %d rows for %d features", errors.ErrInsufficientData, rows, cols)
	}
	if len(names) != cols {
		return nil, fmt.Errorf("feature name count %d does not match %d columns", len(names), cols)
	}

	// Design matrix with a leading ones column for the intercept.
	design := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}

	target := mat.NewVecDense(rows, y)
	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSingularMatrix, err)
	}

	coeffs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		coeffs[j] = beta.AtVec(j + 1)
	}

	return &Model{
		Intercept:    beta.AtVec(0),
		Coefficients: coeffs,
		FeatureNames: append([]string(nil), names...),
	}, nil
}

// Predict returns the fitted value for one feature vector.
func (m *Model) Predict(features []float64) float64 {
	yhat := m.Intercept
	for j, c := range m.Coefficients {
		yhat += c * features[j]
	}
	return yhat
}

// PredictAll returns fitted values for every row of X.
func (m *Model) PredictAll(X mat.Matrix) []float64 {
	rows, cols := X.Dims()
	out := make([]float64, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = X.At(i, j)
		}
		out[i] = m.Predict(row)
	}
	return out
}
