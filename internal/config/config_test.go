package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultCVFolds, cfg.Analysis.CVFolds)
	assert.Equal(t, DefaultKMin, cfg.Analysis.KMin)
	assert.Equal(t, DefaultKMax, cfg.Analysis.KMax)
	assert.Equal(t, DefaultKMeansRuns, cfg.Analysis.KMeansRuns)
	assert.Equal(t, DefaultStageTimeout, cfg.Analysis.Timeout)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Paths.DataDir)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
analysis:
  cv_folds: 3
  k_min: 2
  k_max: 4
server:
  port: 9000
logging:
  level: debug
paths:
  data_dir: /srv/fars/data
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analysis.CVFolds)
	assert.Equal(t, 4, cfg.Analysis.KMax)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/fars/data", cfg.Paths.DataDir)

	// Fields the file omits still get defaults.
	assert.Equal(t, DefaultKMeansRuns, cfg.Analysis.KMeansRuns)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("FARSIGHT_SERVER_PORT", "9100")
	t.Setenv("FARSIGHT_ANALYSIS_CV_FOLDS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Analysis.CVFolds)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestValidate_KRange(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Analysis.KMin = 8
	cfg.Analysis.KMax = 4

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "k_min")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(PathsConfig{
		BaseDir:    base,
		DataDir:    "data",
		ReportsDir: "reports",
		ChartsDir:  "charts",
		LogsDir:    "logs",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data", AccidentFileName), paths.AccidentCSV)
	assert.Equal(t, filepath.Join(base, "data", VehicleFileName), paths.VehicleCSV)
	assert.Equal(t, filepath.Join(base, "data", PersonFileName), paths.PersonCSV)
	assert.Equal(t, filepath.Join(base, "reports", CombinedFileName), paths.CombinedCSV)
	assert.Equal(t, filepath.Join(base, "reports", WorkbookFileName), paths.Workbook)
	assert.Equal(t, filepath.Join(base, "charts", "age_histogram.png"), paths.ChartFile("age_histogram"))
}

func TestNewPaths_AbsoluteDirsKept(t *testing.T) {
	base := t.TempDir()
	data := t.TempDir()

	paths, err := NewPaths(PathsConfig{BaseDir: base, DataDir: data})
	require.NoError(t, err)
	assert.Equal(t, data, paths.DataDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(PathsConfig{
		BaseDir:    base,
		DataDir:    "data",
		ReportsDir: "reports",
		ChartsDir:  "charts",
		LogsDir:    "logs",
	})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.ReportsDir, paths.ChartsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Data dir stays untouched.
	_, err = os.Stat(paths.DataDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRateLimitValidation(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RPS = -1
	assert.Error(t, cfg.Validate())
}

func TestDefaultStageTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Minute, DefaultStageTimeout)
}
