// Package config provides centralized configuration management for farsight.
// It handles loading configuration from multiple sources, validation, and a
// type-safe API for accessing configuration values throughout the pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FARSIGHT_* for namespacing:
//
//	FARSIGHT_PATHS_DATA_DIR=data
//	FARSIGHT_LOGGING_LEVEL=debug
//	FARSIGHT_ANALYSIS_CV_FOLDS=10
//	FARSIGHT_SERVER_PORT=8090
//
// # Paths
//
// The Paths type is the single source of truth for every file location the
// pipeline reads or writes: source CSVs, the combined dataset, reports,
// charts, and logs. All components resolve paths through it rather than
// joining strings themselves.
package config
