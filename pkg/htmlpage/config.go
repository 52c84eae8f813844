package htmlpage

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// Config holds the paths and presentation options for one render
type Config struct {
	OriginalImagePath string          // Raster the ALTO geometry refers to
	OutputHTMLPath    string          // Destination of the generated page
	ImageDir          string          // Directory receiving illustration crops (empty = "images" next to the HTML)
	Title             string          // Page title (empty = base name of OutputHTMLPath)
	Stylesheet        string          // href of the linked stylesheet
	ButtonLabel       string          // Text of the "view original" link
	Logger            *zerolog.Logger // Custom logger (nil = discard)
}

// DefaultConfig returns a config with sensible defaults.
// Paths are left empty and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		Stylesheet:  DefaultStylesheetName,
		ButtonLabel: "View Original Scan",
	}
}

// withDefaults fills presentation fields the caller left empty
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Stylesheet == "" {
		c.Stylesheet = d.Stylesheet
	}
	if c.ButtonLabel == "" {
		c.ButtonLabel = d.ButtonLabel
	}
	if c.ImageDir == "" {
		c.ImageDir = filepath.Join(filepath.Dir(c.OutputHTMLPath), "images")
	}
	return c
}
