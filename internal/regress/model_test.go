package regress

import (
	"context"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"farsight/internal/errors"
)

// syntheticLinear builds n observations of y = 2 + 3*x1 - 1.5*x2 with a
// deterministic grid of inputs and no noise.
func syntheticLinear(n int) (*mat.Dense, []float64) {
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := float64(i)
		x2 := float64(i%7) * 0.5
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		y[i] = 2 + 3*x1 - 1.5*x2
	}
	return X, y
}

func TestFit_RecoversCoefficients(t *testing.T) {
	X, y := syntheticLinear(40)

	model, err := Fit(X, y, []string{"x1", "x2"})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, model.Intercept, 1e-8)
	require.Len(t, model.Coefficients, 2)
	assert.InDelta(t, 3.0, model.Coefficients[0], 1e-8)
	assert.InDelta(t, -1.5, model.Coefficients[1], 1e-8)
	assert.Equal(t, []string{"x1", "x2"}, model.FeatureNames)
}

func TestFit_InsufficientRows(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := []float64{1, 2, 3}

	_, err := Fit(X, y, []string{"x1", "x2"})
	assert.ErrorIs(t, err, errors.ErrInsufficientData)
}

func TestFit_SingularDesign(t *testing.T) {
	// Second column is an exact copy of the first.
	n := 10
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i))
		y[i] = float64(i)
	}

	_, err := Fit(X, y, []string{"a", "a_copy"})
	assert.ErrorIs(t, err, errors.ErrSingularMatrix)
}

func TestFit_TargetLengthMismatch(t *testing.T) {
	X, y := syntheticLinear(10)
	_, err := Fit(X, y[:5], []string{"x1", "x2"})
	assert.Error(t, err)
}

func TestModel_Predict(t *testing.T) {
	model := &Model{Intercept: 1, Coefficients: []float64{2, -1}}
	assert.InDelta(t, 1+2*3-1*4, model.Predict([]float64{3, 4}), 1e-12)
}

func TestEvaluate_PerfectFit(t *testing.T) {
	observed := []float64{1, 2, 3, 4}
	m := Evaluate(observed, observed)

	assert.InDelta(t, 1.0, m.RSquared, 1e-12)
	assert.InDelta(t, 0.0, m.RMSE, 1e-12)
	assert.InDelta(t, 0.0, m.MAE, 1e-12)
	assert.Equal(t, 4, m.N)
}

func TestEvaluate_KnownResiduals(t *testing.T) {
	observed := []float64{2, 4, 6, 8}
	predicted := []float64{3, 3, 7, 7}

	m := Evaluate(observed, predicted)

	// Residuals are all ±1: RMSE = MAE = 1, SS_res = 4, SS_tot = 20.
	assert.InDelta(t, 1.0, m.RMSE, 1e-12)
	assert.InDelta(t, 1.0, m.MAE, 1e-12)
	assert.InDelta(t, 1-4.0/20.0, m.RSquared, 1e-12)
}

func TestEvaluate_Empty(t *testing.T) {
	m := Evaluate(nil, nil)
	assert.Equal(t, Metrics{}, m)
}

func TestCrossValidate(t *testing.T) {
	X, y := syntheticLinear(60)

	result, err := CrossValidate(context.Background(), nil, X, y, []string{"x1", "x2"}, CVConfig{Folds: 5, Seed: 1})
	require.NoError(t, err)

	require.Len(t, result.FoldMetrics, 5)
	totalHeldOut := 0
	for _, m := range result.FoldMetrics {
		totalHeldOut += m.N
		assert.InDelta(t, 1.0, m.RSquared, 1e-6)
	}
	assert.Equal(t, 60, totalHeldOut)

	assert.InDelta(t, 1.0, result.MeanR2, 1e-6)
	assert.InDelta(t, 0.0, result.MeanRMSE, 1e-6)

	require.NotNil(t, result.FullModel)
	assert.InDelta(t, 3.0, result.FullModel.Coefficients[0], 1e-8)
}

func TestCrossValidate_Deterministic(t *testing.T) {
	X, y := syntheticLinear(60)
	cfg := CVConfig{Folds: 4, Seed: 42}

	first, err := CrossValidate(context.Background(), nil, X, y, []string{"x1", "x2"}, cfg)
	require.NoError(t, err)
	second, err := CrossValidate(context.Background(), nil, X, y, []string{"x1", "x2"}, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.FoldMetrics, second.FoldMetrics)
}

func TestCrossValidate_TooFewRows(t *testing.T) {
	X, y := syntheticLinear(10)
	_, err := CrossValidate(context.Background(), nil, X, y, []string{"x1", "x2"}, CVConfig{Folds: 5, Seed: 1})
	assert.ErrorIs(t, err, errors.ErrInsufficientData)
}

func TestBuildDesign(t *testing.T) {
	df := dataframe.New(
		series.New([]int{20, 30, 40}, series.Int, "AGE"),
		series.New([]int{0, 1, 1}, series.Int, "F_NIGHT"),
		series.New([]int{1, 2, 3}, series.Int, "FATALS"),
	)

	X, y, err := BuildDesign(df, []string{"AGE", "F_NIGHT"}, "FATALS")
	require.NoError(t, err)

	rows, cols := X.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []float64{1, 2, 3}, y)
	assert.Equal(t, 30.0, X.At(1, 0))
	assert.Equal(t, 1.0, X.At(1, 1))
}

func TestBuildDesign_DropsNaNRows(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{20, math.NaN(), 40}, series.Float, "AGE"),
		series.New([]float64{1, 2, math.NaN()}, series.Float, "FATALS"),
	)

	X, y, err := BuildDesign(df, []string{"AGE"}, "FATALS")
	require.NoError(t, err)

	rows, _ := X.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, []float64{1}, y)
}

func TestBuildDesign_MissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]int{1}, series.Int, "AGE"))
	_, _, err := BuildDesign(df, []string{"NOPE"}, "AGE")
	assert.Error(t, err)
}

func TestBuildDesign_Empty(t *testing.T) {
	df := dataframe.New(series.New([]int{}, series.Int, "AGE"))
	_, _, err := BuildDesign(df, []string{"AGE"}, "AGE")
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}
