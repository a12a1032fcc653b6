package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Profile describes one cluster in terms of the original (unstandardized)
// feature means of its members.
type Profile struct {
	Cluster      int       `json:"cluster"`
	Size         int       `json:"size"`
	Share        float64   `json:"share"`
	FeatureMeans []float64 `json:"feature_means"`
}

// Profiles computes per-cluster feature means over the original feature
// matrix, given the assignments from a fit on the standardized copy.
func Profiles(original *mat.Dense, result *Result, featureNames []string) ([]Profile, error) {
	rows, cols := original.Dims()
	if len(result.Assignments) != rows {
		return nil, fmt.Errorf("assignment count %d does not match %d rows", len(result.Assignments), rows)
	}
	if len(featureNames) != cols {
		return nil, fmt.Errorf("feature name count %d does not match %d columns", len(featureNames), cols)
	}

	sums := make([][]float64, result.K)
	counts := make([]int, result.K)
	for c := range sums {
		sums[c] = make([]float64, cols)
	}

	for i := 0; i < rows; i++ {
		c := result.Assignments[i]
		counts[c]++
		for j := 0; j < cols; j++ {
			sums[c][j] += original.At(i, j)
		}
	}

	profiles := make([]Profile, result.K)
	for c := 0; c < result.K; c++ {
		means := make([]float64, cols)
		if counts[c] > 0 {
			for j := 0; j < cols; j++ {
				means[j] = sums[c][j] / float64(counts[c])
			}
		}
		profiles[c] = Profile{
			Cluster:      c,
			Size:         counts[c],
			Share:        float64(counts[c]) / float64(rows),
			FeatureMeans: means,
		}
	}

	return profiles, nil
}
