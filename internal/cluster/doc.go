// Package cluster runs k-means over the standardized numeric features of
// the crash table. The clustering itself is delegated to muesli/kmeans;
// this package owns standardization, the WCSS elbow scan used to pick the
// cluster count, and the per-cluster profiles reported downstream.
package cluster
