package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// AnalysisConfig contains modeling and exploration parameters.
type AnalysisConfig struct {
	CVFolds    int           `yaml:"cv_folds" envconfig:"CV_FOLDS" default:"5" validate:"min=2,max=20"`
	KMin       int           `yaml:"k_min" envconfig:"K_MIN" default:"2" validate:"min=2"`
	KMax       int           `yaml:"k_max" envconfig:"K_MAX" default:"10" validate:"min=2,max=50"`
	KMeansRuns int           `yaml:"kmeans_runs" envconfig:"KMEANS_RUNS" default:"10" validate:"min=1"`
	Seed       int64         `yaml:"seed" envconfig:"SEED" default:"1"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"10m"`
}

// ServerConfig contains HTTP report-server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8090" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration for the report server.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/farsight.log"`
}

// PathsConfig contains file system paths configuration. Relative paths are
// resolved against the base directory by NewPaths.
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	ChartsDir  string `yaml:"charts_dir" envconfig:"CHARTS_DIR" default:"charts"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// File first so that env processing can override it.
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	if err := envconfig.Process("FARSIGHT", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero-valued fields that envconfig defaults do not
// reach when a config file supplied a partial section.
func (c *Config) applyDefaults() {
	if c.Analysis.CVFolds == 0 {
		c.Analysis.CVFolds = DefaultCVFolds
	}
	if c.Analysis.KMin == 0 {
		c.Analysis.KMin = DefaultKMin
	}
	if c.Analysis.KMax == 0 {
		c.Analysis.KMax = DefaultKMax
	}
	if c.Analysis.KMeansRuns == 0 {
		c.Analysis.KMeansRuns = DefaultKMeansRuns
	}
	if c.Analysis.Timeout == 0 {
		c.Analysis.Timeout = DefaultStageTimeout
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimit.RPS == 0 {
		c.Server.RateLimit.RPS = DefaultRateLimit
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = DefaultBurstSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/farsight.log"
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = "data"
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = "reports"
	}
	if c.Paths.ChartsDir == "" {
		c.Paths.ChartsDir = "charts"
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}
}

// Validate validates the configuration using struct tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Analysis.KMin > c.Analysis.KMax {
		return fmt.Errorf("k_min (%d) must not exceed k_max (%d)", c.Analysis.KMin, c.Analysis.KMax)
	}

	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled, got %v", c.Server.RateLimit.RPS)
	}

	return nil
}
