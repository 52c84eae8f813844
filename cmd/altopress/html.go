package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gardar/altopress/pkg/htmlpage"
)

func newHTMLCmd(global *globalOptions) *cobra.Command {
	var (
		altoPath  string
		imagePath string
		output    string
		imageDir  string
		noCSS     bool
	)

	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render one ALTO file as a positioned HTML page",
		Long: `Render one ALTO file as an HTML page with every String absolutely positioned
at its scanned coordinates, each Illustration cropped from the page raster into
the image directory, and a link back to the original scan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := htmlpage.DefaultConfig()
			cfg.OriginalImagePath = imagePath
			cfg.OutputHTMLPath = output
			cfg.ImageDir = imageDir
			cfg.Logger = &global.logger

			if err := htmlpage.RenderFile(altoPath, cfg, global.parseOptions()); err != nil {
				return err
			}
			if noCSS {
				return nil
			}
			return htmlpage.WriteStylesheet(filepath.Dir(output))
		},
	}

	cmd.Flags().StringVar(&altoPath, "alto", "", "Path to the ALTO XML file (required)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the page raster the ALTO geometry refers to (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to save the HTML page (required)")
	cmd.Flags().StringVar(&imageDir, "image-dir", "", "Directory to save illustration crops (default \"images\" next to the HTML page)")
	cmd.Flags().BoolVar(&noCSS, "no-css", false, "Do not write style.css next to the HTML page")
	_ = cmd.MarkFlagRequired("alto")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
