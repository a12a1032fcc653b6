// Package regress fits the ordinary least squares model predicting the
// fatality count of a crash from the engineered feature columns, and
// evaluates it with k-fold cross-validation.
//
// The linear algebra is delegated to gonum/mat (QR-based least squares via
// Dense.Solve); this package owns only design-matrix assembly, the fold
// partition, and the reported metrics (R², RMSE, MAE).
package regress
