package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gardar/altopress/pkg/alto"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	logLevel  string
	logFormat string
	tolerant  bool

	logger zerolog.Logger
}

func (o *globalOptions) parseOptions() alto.ParseOptions {
	return alto.ParseOptions{Tolerant: o.tolerant}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "altopress",
		Short: "Render ALTO XML as HTML and extract normalized text for RAG",
		Long: `altopress reads ALTO XML OCR output and produces a pixel-faithful HTML page
with cropped illustrations, and a JSON list of normalized text units tagged
with newspaper metadata for retrieval-augmented generation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format (console or json)")
	cmd.PersistentFlags().BoolVar(&opts.tolerant, "tolerant", false, "Accept String and Illustration elements without geometry")

	cmd.AddCommand(newHTMLCmd(opts), newRAGCmd(opts), newBatchCmd(opts))
	return cmd
}
