package htmlpage

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/gardar/altopress/pkg/alto"
)

// DefaultStylesheetName is the file name the generated page links to
const DefaultStylesheetName = "style.css"

//go:embed assets/style.css
var defaultStylesheet []byte

// Stylesheet returns a copy of the embedded default stylesheet
func Stylesheet() []byte {
	return append([]byte(nil), defaultStylesheet...)
}

// WriteStylesheet writes the default stylesheet into dir as style.css
func WriteStylesheet(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return alto.WriteError(dir, err)
	}
	path := filepath.Join(dir, DefaultStylesheetName)
	if err := renameio.WriteFile(path, defaultStylesheet, 0o644); err != nil {
		return alto.WriteError(path, err)
	}
	return nil
}
