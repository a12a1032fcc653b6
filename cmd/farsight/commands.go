package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"farsight/internal/config"
	"farsight/internal/infrastructure"
	"farsight/internal/pipeline"
	"farsight/internal/server"
)

// setup loads config, initializes logging, and builds the pipeline with a
// trace-ID context for the run.
func setup() (context.Context, *config.Config, *pipeline.Pipeline, error) {
	cfg, paths, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger = infrastructure.WithComponent(logger, "pipeline")
	return ctx, cfg, pipeline.New(cfg, paths, logger), nil
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Load, join, and clean the three FARS extracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			df, err := p.Merge(ctx)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "merge completed", slog.Int("rows", df.Nrow()))
			return nil
		},
	}
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Descriptive statistics, frequency tables, and charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			df, err := p.LoadCombined(ctx)
			if err != nil {
				return err
			}
			result, err := p.Explore(ctx, df)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "exploration completed",
				slog.Int("summaries", len(result.Summaries)),
				slog.Int("charts", len(result.Charts)))
			return nil
		},
	}
}

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Engineer derived columns and one-hot indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			df, err := p.LoadCombined(ctx)
			if err != nil {
				return err
			}
			df, oneHot, err := p.Features(ctx, df)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "feature engineering completed",
				slog.Int("cols", df.Ncol()),
				slog.Int("one_hot", len(oneHot)))
			return nil
		},
	}
}

func newRegressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regress",
		Short: "Fit the fatality regression with k-fold cross-validation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			df, err := p.LoadCombined(ctx)
			if err != nil {
				return err
			}
			result, err := p.Regress(ctx, df, nil)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "regression completed",
				slog.Float64("mean_r2", result.MeanR2),
				slog.Float64("mean_rmse", result.MeanRMSE))
			return nil
		},
	}
}

func newClusterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cluster",
		Short: "Segment crashes with k-means over an elbow-chosen k",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			df, err := p.LoadCombined(ctx)
			if err != nil {
				return err
			}
			result, err := p.Cluster(ctx, df)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "clustering completed",
				slog.Int("k", result.ChosenK),
				slog.Float64("wcss", result.Fit.WCSS))
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run the full pipeline and write all reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, p, err := setup()
			if err != nil {
				return err
			}
			results, err := p.Report(ctx)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "report completed", slog.Int("rows", results.Rows))
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated reports and charts over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, paths, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server, paths, infrastructure.WithComponent(logger, "server"))
			return srv.Run(ctx)
		},
	}
}
