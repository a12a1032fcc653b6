package config

import "time"

// Application constants shared across the farsight pipeline.
const (
	// Application info
	AppName    = "farsight"
	AppVersion = "1.2.0"

	// Source file names expected inside the data directory. These match
	// the NHTSA FARS auxiliary extract distribution.
	AccidentFileName = "ACC_AUX.CSV"
	VehicleFileName  = "VEH_AUX.CSV"
	PersonFileName   = "PER_AUX.CSV"

	// Well-known output file names.
	CombinedFileName    = "combined_crash_data.csv"
	SummaryFileName     = "summary_report.txt"
	RegressionFileName  = "regression_metrics.csv"
	ClusterFileName     = "cluster_profiles.csv"
	WorkbookFileName    = "analysis_report.xlsx"
	FrequenciesFileName = "frequency_tables.csv"

	// Modeling defaults.
	DefaultCVFolds    = 5
	DefaultKMin       = 2
	DefaultKMax       = 10
	DefaultKMeansRuns = 10

	// Server defaults.
	DefaultServerPort  = 8090
	DefaultRateLimit   = 100 // requests per second
	DefaultBurstSize   = 50
	DefaultHTTPTimeout = 30 * time.Second

	// Pipeline stage timeout. Large FARS years are a few hundred
	// thousand joined rows; modeling stays well under this.
	DefaultStageTimeout = 10 * time.Minute
)
