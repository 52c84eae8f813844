package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardar/altopress/pkg/pipeline"
)

func newBatchCmd(global *globalOptions) *cobra.Command {
	var (
		inputDir   string
		outputDir  string
		configPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render and extract every ALTO file in a directory",
		Long: `Pair every .xml file in the input directory with its page raster, then write
the HTML page and the RAG units of each document under the output directory.
A failing document is logged and does not stop the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if global.tolerant {
				cfg.Tolerant = true
			}

			logDir := filepath.Join(outputDir, "logs")
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
			logFile, err := os.OpenFile(filepath.Join(logDir, "pipeline.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()

			logger := teeLogger(global.logger, cmd.ErrOrStderr(), global.logFormat, logFile)
			cfg.Logger = &logger

			jobs, err := pipeline.Discover(inputDir)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				logger.Warn().Str("input", inputDir).Msg("No ALTO files found")
				return nil
			}
			logger.Info().Int("documents", len(jobs)).Int("workers", cfg.Workers).Msg("Starting batch")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report := pipeline.Run(ctx, jobs, outputDir, cfg)
			if failed := report.Failures(); len(failed) > 0 {
				return fmt.Errorf("%d of %d documents failed, see %s", len(failed), len(jobs), logFile.Name())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory with ALTO XML files and their page rasters (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to save the per-document output trees (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config (required)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Documents processed at once (0 = one per CPU, overrides the config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
