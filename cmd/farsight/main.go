// Command farsight runs the FARS crash-data analysis pipeline: it merges
// the three auxiliary extracts, explores and charts the combined table,
// engineers modeling features, fits the regression and clustering models,
// and serves the generated reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"farsight/internal/config"
	"farsight/internal/infrastructure"
)

var (
	cfgFile string
	dataDir string
	baseDir string
)

var rootCmd = &cobra.Command{
	Use:   "farsight",
	Short: "Exploratory analysis of FARS traffic-fatality extracts",
	Long: `farsight loads the NHTSA FARS auxiliary CSV extracts (ACC_AUX, VEH_AUX,
PER_AUX), joins them on the case-number key, and produces descriptive
statistics, charts, a fatality regression, and a k-means segmentation of
the joined records.`,
	SilenceUsage: true,
}

func main() {
	err := rootCmd.Execute()
	if cerr := infrastructure.CloseLogFile(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the FARS auxiliary CSVs")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "base directory for outputs (defaults to the working directory)")

	rootCmd.AddCommand(
		newMergeCmd(),
		newExploreCmd(),
		newFeaturesCmd(),
		newRegressCmd(),
		newClusterCmd(),
		newReportCmd(),
		newServeCmd(),
	)
}

// loadConfig builds the configuration and paths from flags, environment,
// and the optional config file.
func loadConfig() (*config.Config, *config.Paths, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if dataDir != "" {
		cfg.Paths.DataDir = dataDir
	}
	if baseDir != "" {
		cfg.Paths.BaseDir = baseDir
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("prepare directories: %w", err)
	}

	return cfg, paths, nil
}
