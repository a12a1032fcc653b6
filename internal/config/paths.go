package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the pipeline touches.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	ChartsDir  string
	LogsDir    string

	// Source CSVs
	AccidentCSV string
	VehicleCSV  string
	PersonCSV   string

	// Well-known output files
	CombinedCSV    string
	SummaryReport  string
	RegressionCSV  string
	ClusterCSV     string
	FrequenciesCSV string
	Workbook       string
}

// NewPaths resolves all application paths from the paths configuration.
// Relative directories are resolved against the base directory; an empty
// base directory means the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}

	p := &Paths{
		BaseDir:    abs,
		DataDir:    resolveDir(abs, cfg.DataDir),
		ReportsDir: resolveDir(abs, cfg.ReportsDir),
		ChartsDir:  resolveDir(abs, cfg.ChartsDir),
		LogsDir:    resolveDir(abs, cfg.LogsDir),
	}

	p.AccidentCSV = filepath.Join(p.DataDir, AccidentFileName)
	p.VehicleCSV = filepath.Join(p.DataDir, VehicleFileName)
	p.PersonCSV = filepath.Join(p.DataDir, PersonFileName)

	p.CombinedCSV = filepath.Join(p.ReportsDir, CombinedFileName)
	p.SummaryReport = filepath.Join(p.ReportsDir, SummaryFileName)
	p.RegressionCSV = filepath.Join(p.ReportsDir, RegressionFileName)
	p.ClusterCSV = filepath.Join(p.ReportsDir, ClusterFileName)
	p.FrequenciesCSV = filepath.Join(p.ReportsDir, FrequenciesFileName)
	p.Workbook = filepath.Join(p.ReportsDir, WorkbookFileName)

	return p, nil
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the output directories if they do not exist.
// The data directory is the user's responsibility and is only checked on read.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.ChartsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ChartFile returns the path of a named chart PNG inside the charts directory.
func (p *Paths) ChartFile(name string) string {
	return filepath.Join(p.ChartsDir, name+".png")
}
