package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gardar/altopress/pkg/pipeline"
	"github.com/gardar/altopress/pkg/ragtext"
)

func newRAGCmd(global *globalOptions) *cobra.Command {
	var (
		altoPath        string
		output          string
		configPath      string
		publicationDate string
		newspaperTitle  string
	)

	cmd := &cobra.Command{
		Use:   "rag",
		Short: "Extract normalized text units from one ALTO file",
		Long: `Extract one normalized text unit per TextBlock of an ALTO file and save them
as a JSON array. Metadata comes from --config, and --publication-date and
--newspaper-title override what the config sets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg pipeline.Config
			if configPath != "" {
				loaded, err := pipeline.ReadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if publicationDate != "" {
				cfg.Metadata.PublicationDate = publicationDate
			}
			if newspaperTitle != "" {
				cfg.Metadata.NewspaperTitle = newspaperTitle
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("missing metadata (use --config or --publication-date and --newspaper-title): %w", err)
			}

			ragCfg := ragtext.Config{
				FoldAccents:    cfg.FoldAccents,
				ExtraStopwords: cfg.ExtraStopwords,
				Logger:         &global.logger,
			}
			opts := global.parseOptions()
			opts.Tolerant = opts.Tolerant || cfg.Tolerant
			return ragtext.GenerateFile(altoPath, output, cfg.Metadata, ragCfg, opts)
		},
	}

	cmd.Flags().StringVar(&altoPath, "alto", "", "Path to the ALTO XML file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to save the JSON units (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config with the newspaper metadata")
	cmd.Flags().StringVar(&publicationDate, "publication-date", "", "Publication date attached to every unit")
	cmd.Flags().StringVar(&newspaperTitle, "newspaper-title", "", "Newspaper title attached to every unit")
	_ = cmd.MarkFlagRequired("alto")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
