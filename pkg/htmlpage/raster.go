package htmlpage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/altopress/pkg/alto"
)

// loadRaster decodes the original scan once for all crops
func loadRaster(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", alto.ImageReadError(path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", alto.ImageReadError(path, fmt.Errorf("failed to decode image: %w", err))
	}
	return img, strings.ToUpper(format), nil
}

// cropRegion copies the part of src covered by g into a new zero-origin image.
// The rectangle is clamped to the raster bounds; clamped reports whether that
// changed it. A zero-area region, or one entirely outside the raster, yields
// a 1x1 transparent image so every illustration still gets a file.
func cropRegion(src image.Image, g alto.Geometry) (img image.Image, clamped bool) {
	want := g.Rect()
	if want.Empty() {
		return placeholder(), false
	}
	r := want.Intersect(src.Bounds())
	if r.Empty() {
		return placeholder(), true
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst, r != want
}

func placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// savePNG encodes img and atomically replaces path with it
func savePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return alto.WriteError(path, fmt.Errorf("failed to encode PNG: %w", err))
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return alto.WriteError(path, err)
	}
	return nil
}
