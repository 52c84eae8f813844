// Package htmlpage reconstructs a scanned page as HTML from its ALTO layout.
//
// Every recognized String becomes an absolutely positioned span at the exact
// pixel geometry reported by the OCR engine, and every Illustration is cropped
// out of the original raster, saved as a PNG and placed as an img at the same
// geometry. The result is a visual reconstruction, not cleaned text: token
// content is emitted unmodified.
//
// Key Features:
//
// - Pixel-faithful absolute positioning of text tokens and illustrations
// - Illustration cropping with clamping to the raster bounds
// - Raster decoding for PNG, JPEG, GIF, TIFF, BMP and WebP scans
// - A fixed link back to the unmodified original scan
// - Atomic output writes, so a failed render never leaves a truncated page
//
// Main Functions:
//
// - Render: Renders a parsed alto.Document against its original raster
// - RenderFile: Parses an ALTO file and renders it
// - WriteStylesheet: Writes the default stylesheet the page links to
package htmlpage

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"golang.org/x/net/html"

	"github.com/gardar/altopress/pkg/alto"
)

// ViewOriginalClass is the class of the trailing link to the original scan
const ViewOriginalClass = "view-original-button"

// RenderFile is a high-level function that parses an ALTO file and renders it.
// A parse failure is returned before the raster is touched or anything is written.
func RenderFile(altoPath string, cfg Config, opts alto.ParseOptions) error {
	logger := getLogger(cfg)
	logger.Info().Str("alto", altoPath).Msg("Generating HTML from ALTO file")

	doc, err := alto.ParseFile(altoPath, opts)
	if err != nil {
		return err
	}
	return Render(doc, cfg)
}

// Render writes the HTML reconstruction of doc to cfg.OutputHTMLPath and the
// illustration crops to cfg.ImageDir.
//
// The raster is decoded first; if that fails an alto.ErrImageRead error is
// returned and nothing is written. Write failures are reported as alto.ErrWrite.
func Render(doc *alto.Document, cfg Config) error {
	if doc == nil {
		return alto.ParseError("", errors.New("document is nil"))
	}
	cfg = cfg.withDefaults()
	logger := getLogger(cfg)

	raster, format, err := loadRaster(cfg.OriginalImagePath)
	if err != nil {
		logger.Error().Err(err).Str("image", cfg.OriginalImagePath).Msg("Could not read image")
		return err
	}
	bounds := raster.Bounds()
	logger.Debug().
		Str("image", cfg.OriginalImagePath).
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("Decoded original scan")

	if err := os.MkdirAll(cfg.ImageDir, 0o755); err != nil {
		return alto.WriteError(cfg.ImageDir, err)
	}

	title := cfg.Title
	if title == "" {
		title = filepath.Base(cfg.OutputHTMLPath)
	}

	// Create the basic HTML document structure
	root := element("html")
	head := element("head")
	head.AppendChild(element("title"))
	head.FirstChild.AppendChild(text(title))
	head.AppendChild(element("link", attr("rel", "stylesheet"), attr("href", cfg.Stylesheet)))
	root.AppendChild(head)
	body := element("body")
	body.AppendChild(text("\n"))
	root.AppendChild(body)

	for _, s := range doc.Strings() {
		span := element("span", attr("style", positionStyle(s.Geometry)))
		span.AppendChild(text(s.Content))
		appendLine(body, span)
	}

	for i, ill := range doc.Illustrations {
		img, err := processIllustration(raster, ill, i, cfg)
		if err != nil {
			return err
		}
		appendLine(body, img)
	}

	// Fixed-position link back to the unmodified scan
	button := element("a",
		attr("href", cfg.OriginalImagePath),
		attr("target", "_blank"),
		attr("class", ViewOriginalClass),
	)
	button.AppendChild(text(cfg.ButtonLabel))
	appendLine(body, button)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return alto.WriteError(cfg.OutputHTMLPath, err)
	}
	buf.WriteString("\n")

	if err := renameio.WriteFile(cfg.OutputHTMLPath, buf.Bytes(), 0o644); err != nil {
		return alto.WriteError(cfg.OutputHTMLPath, err)
	}

	logger.Info().
		Str("html", cfg.OutputHTMLPath).
		Int("strings", doc.StringCount()).
		Int("illustrations", len(doc.Illustrations)).
		Msg("HTML file saved")
	return nil
}

// processIllustration crops and saves the i-th illustration and returns its img node
func processIllustration(raster image.Image, ill alto.Illustration, i int, cfg Config) (*html.Node, error) {
	logger := getLogger(cfg)
	name := illustrationName(i)
	path := filepath.Join(cfg.ImageDir, name)

	cropped, clamped := cropRegion(raster, ill.Geometry)
	switch {
	case ill.Geometry.Rect().Empty():
		logger.Warn().
			Int("index", i).
			Int("declared_width", ill.Geometry.Width).
			Int("declared_height", ill.Geometry.Height).
			Msg("Empty illustration region; writing placeholder image")
	case clamped:
		size := cropped.Bounds().Size()
		logger.Warn().
			Int("index", i).
			Int("declared_width", ill.Geometry.Width).
			Int("declared_height", ill.Geometry.Height).
			Int("cropped_width", size.X).
			Int("cropped_height", size.Y).
			Msg("Illustration exceeds raster bounds; crop clamped")
	}

	if err := savePNG(path, cropped); err != nil {
		return nil, err
	}
	logger.Debug().Int("index", i).Str("path", path).Msg("Saved illustration")

	return element("img",
		attr("src", imageSrc(cfg.ImageDir, name)),
		attr("style", positionStyle(ill.Geometry)),
	), nil
}
