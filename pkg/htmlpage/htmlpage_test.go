package htmlpage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/gardar/altopress/pkg/alto"
)

const scenarioA = `<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
  <Layout>
    <Page>
      <PrintSpace>
        <TextBlock>
          <TextLine>
            <String CONTENT="Hello" HPOS="10" VPOS="20" WIDTH="50" HEIGHT="10"/>
          </TextLine>
        </TextBlock>
        <Illustration HPOS="100" VPOS="100" WIDTH="200" HEIGHT="150"/>
      </PrintSpace>
    </Page>
  </Layout>
</alto>`

type fixture struct {
	dir       string
	altoPath  string
	imagePath string
	htmlPath  string
	imageDir  string
}

func newFixture(t *testing.T, altoXML string, width, height int) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:       dir,
		altoPath:  filepath.Join(dir, "page.xml"),
		imagePath: filepath.Join(dir, "scan.png"),
		htmlPath:  filepath.Join(dir, "page.html"),
		imageDir:  filepath.Join(dir, "images"),
	}
	require.NoError(t, os.WriteFile(f.altoPath, []byte(altoXML), 0o644))
	writePNG(t, f.imagePath, blankRaster(width, height))
	return f
}

func (f fixture) config() Config {
	cfg := DefaultConfig()
	cfg.OriginalImagePath = f.imagePath
	cfg.OutputHTMLPath = f.htmlPath
	cfg.ImageDir = f.imageDir
	return cfg
}

func blankRaster(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func pngSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func loadHTML(t *testing.T, path string) *goquery.Document {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func TestRenderFileScenario(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	require.NoError(t, RenderFile(f.altoPath, f.config(), alto.ParseOptions{}))

	doc := loadHTML(t, f.htmlPath)
	assert.Equal(t, "page.html", doc.Find("head title").Text())
	assert.Equal(t, "style.css", doc.Find(`head link[rel="stylesheet"]`).AttrOr("href", ""))

	spans := doc.Find("span")
	require.Equal(t, 1, spans.Length())
	assert.Equal(t, "Hello", spans.Text())
	assert.Equal(t,
		"position: absolute; left: 10px; top: 20px; width: 50px; height: 10px;",
		spans.AttrOr("style", ""))

	imgs := doc.Find("img")
	require.Equal(t, 1, imgs.Length())
	assert.Equal(t, "images/illustration_0.png", imgs.AttrOr("src", ""))
	assert.Equal(t,
		"position: absolute; left: 100px; top: 100px; width: 200px; height: 150px;",
		imgs.AttrOr("style", ""))

	crop := filepath.Join(f.imageDir, "illustration_0.png")
	require.FileExists(t, crop)
	assert.Equal(t, image.Pt(200, 150), pngSize(t, crop))
}

func TestRenderTrailingLink(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	require.NoError(t, RenderFile(f.altoPath, f.config(), alto.ParseOptions{}))

	last := loadHTML(t, f.htmlPath).Find("body").Children().Last()
	assert.Equal(t, "a", goquery.NodeName(last))
	assert.Equal(t, ViewOriginalClass, last.AttrOr("class", ""))
	assert.Equal(t, f.imagePath, last.AttrOr("href", ""))
	assert.Equal(t, "_blank", last.AttrOr("target", ""))
	assert.Equal(t, "View Original Scan", last.Text())
}

func TestRenderPreservesCountsAndOrder(t *testing.T) {
	doc := &alto.Document{
		TextBlocks: []alto.TextBlock{
			{Strings: []alto.String{
				{Content: "Tom & Jerry", Geometry: alto.NewGeometry(1, 2, 3, 4)},
				{Content: "<b>raw</b>", Geometry: alto.NewGeometry(5, 6, 7, 8)},
			}},
			{Strings: []alto.String{}},
			{Strings: []alto.String{
				{Content: "recog-", Geometry: alto.NewGeometry(9, 10, 11, 12)},
			}},
		},
		Illustrations: []alto.Illustration{
			{Geometry: alto.NewGeometry(0, 0, 10, 10)},
			{Geometry: alto.NewGeometry(10, 10, 20, 5)},
			{Geometry: alto.NewGeometry(30, 0, 5, 30)},
		},
	}

	f := newFixture(t, "<alto/>", 64, 64)
	require.NoError(t, Render(doc, f.config()))
	page := loadHTML(t, f.htmlPath)

	var all []alto.String
	for _, tb := range doc.TextBlocks {
		all = append(all, tb.Strings...)
	}
	spans := page.Find("span")
	require.Equal(t, doc.StringCount(), spans.Length())
	spans.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, all[i].Content, s.Text())
		assert.Equal(t, positionStyle(all[i].Geometry), s.AttrOr("style", ""))
	})

	imgs := page.Find("img")
	require.Equal(t, len(doc.Illustrations), imgs.Length())
	imgs.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, fmt.Sprintf("images/illustration_%d.png", i), s.AttrOr("src", ""))
		g := doc.Illustrations[i].Geometry
		assert.Equal(t, image.Pt(g.Width, g.Height), pngSize(t, filepath.Join(f.imageDir, illustrationName(i))))
	})

	entries, err := os.ReadDir(f.imageDir)
	require.NoError(t, err)
	assert.Len(t, entries, len(doc.Illustrations))
}

func TestRenderClampsCrops(t *testing.T) {
	doc := &alto.Document{
		Illustrations: []alto.Illustration{
			{Geometry: alto.NewGeometry(250, 260, 100, 100)}, // partially outside
			{Geometry: alto.NewGeometry(500, 500, 10, 10)},   // fully outside
		},
	}

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	f := newFixture(t, "<alto/>", 300, 300)
	cfg := f.config()
	cfg.Logger = &logger

	require.NoError(t, Render(doc, cfg))
	assert.Equal(t, image.Pt(50, 40), pngSize(t, filepath.Join(f.imageDir, "illustration_0.png")))
	assert.Equal(t, image.Pt(1, 1), pngSize(t, filepath.Join(f.imageDir, "illustration_1.png")))
	assert.Contains(t, logs.String(), "crop clamped")

	// the img keeps the declared geometry
	style := loadHTML(t, f.htmlPath).Find("img").First().AttrOr("style", "")
	assert.Contains(t, style, "width: 100px; height: 100px;")
}

func TestRenderImageReadError(t *testing.T) {
	f := newFixture(t, scenarioA, 10, 10)
	require.NoError(t, os.WriteFile(f.imagePath, []byte("definitely not an image"), 0o644))

	err := RenderFile(f.altoPath, f.config(), alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrImageRead)
	assert.NoFileExists(t, f.htmlPath)
	assert.NoDirExists(t, f.imageDir)
}

func TestRenderMissingRaster(t *testing.T) {
	f := newFixture(t, scenarioA, 10, 10)
	cfg := f.config()
	cfg.OriginalImagePath = filepath.Join(f.dir, "missing.png")

	err := RenderFile(f.altoPath, cfg, alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrImageRead)
	assert.NoFileExists(t, f.htmlPath)
}

func TestRenderFileMalformedXML(t *testing.T) {
	f := newFixture(t, "<alto><Layout><Page>", 10, 10)

	err := RenderFile(f.altoPath, f.config(), alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrParse)
	assert.NoFileExists(t, f.htmlPath)
	assert.NoDirExists(t, f.imageDir)
}

func TestRenderFileMissingALTO(t *testing.T) {
	f := newFixture(t, scenarioA, 10, 10)
	err := RenderFile(filepath.Join(f.dir, "nope.xml"), f.config(), alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrNotFound)
}

func TestRenderWriteError(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	cfg := f.config()
	cfg.OutputHTMLPath = filepath.Join(f.dir, "no-such-dir", "page.html")

	err := RenderFile(f.altoPath, cfg, alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrWrite)
}

func TestRenderNilDocument(t *testing.T) {
	assert.Error(t, Render(nil, DefaultConfig()))
}

func TestRenderDeterministic(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	require.NoError(t, RenderFile(f.altoPath, f.config(), alto.ParseOptions{}))
	first, err := os.ReadFile(f.htmlPath)
	require.NoError(t, err)

	require.NoError(t, RenderFile(f.altoPath, f.config(), alto.ParseOptions{}))
	second, err := os.ReadFile(f.htmlPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.True(t, strings.HasPrefix(string(first), "<html><head><title>page.html</title>"))
}

func TestRenderTIFFRaster(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	tiffPath := filepath.Join(f.dir, "scan.tif")
	out, err := os.Create(tiffPath)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(out, blankRaster(300, 300), nil))
	require.NoError(t, out.Close())

	cfg := f.config()
	cfg.OriginalImagePath = tiffPath
	require.NoError(t, RenderFile(f.altoPath, cfg, alto.ParseOptions{}))
	assert.Equal(t, image.Pt(200, 150), pngSize(t, filepath.Join(f.imageDir, "illustration_0.png")))
}

func TestRenderDefaultImageDir(t *testing.T) {
	f := newFixture(t, scenarioA, 300, 300)
	cfg := f.config()
	cfg.ImageDir = ""

	require.NoError(t, RenderFile(f.altoPath, cfg, alto.ParseOptions{}))
	assert.FileExists(t, filepath.Join(f.dir, "images", "illustration_0.png"))
}

func TestCropRegionCopiesPixels(t *testing.T) {
	src := blankRaster(20, 20)
	src.Set(5, 6, color.RGBA{R: 255, A: 255})

	cropped, clamped := cropRegion(src, alto.NewGeometry(5, 6, 4, 4))
	assert.False(t, clamped)
	assert.Equal(t, image.Rect(0, 0, 4, 4), cropped.Bounds())
	r, _, _, _ := cropped.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestImageSrc(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"out/html/images", "images/illustration_0.png"},
		{"out/html/images/", "images/illustration_0.png"},
		{`C:\out\figs`, "figs/illustration_0.png"},
		{"", "illustration_0.png"},
		{".", "illustration_0.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, imageSrc(tt.dir, illustrationName(0)), tt.dir)
	}
}

func TestWriteStylesheet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "html")
	require.NoError(t, WriteStylesheet(dir))

	data, err := os.ReadFile(filepath.Join(dir, DefaultStylesheetName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "."+ViewOriginalClass)
	assert.Equal(t, Stylesheet(), data)
}

func TestRenderEmptyIllustrationRegion(t *testing.T) {
	doc := &alto.Document{
		Illustrations: []alto.Illustration{{Geometry: alto.NewGeometry(10, 10, 0, 20)}},
	}

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	f := newFixture(t, "<alto/>", 100, 100)
	cfg := f.config()
	cfg.Logger = &logger

	require.NoError(t, Render(doc, cfg))
	assert.Equal(t, image.Pt(1, 1), pngSize(t, filepath.Join(f.imageDir, "illustration_0.png")))
	assert.Contains(t, logs.String(), "Empty illustration region")
	assert.NotContains(t, logs.String(), "exceeds raster bounds")

	_, clamped := cropRegion(blankRaster(100, 100), alto.NewGeometry(10, 10, 0, 20))
	assert.False(t, clamped)
}

func TestRenderDrawsStrayStrings(t *testing.T) {
	page := `<alto><PrintSpace>
  <TextLine><String CONTENT="EVENING HERALD" HPOS="0" VPOS="0" WIDTH="90" HEIGHT="12"/></TextLine>
  <TextBlock><TextLine><String CONTENT="Harbour" HPOS="5" VPOS="30" WIDTH="40" HEIGHT="10"/></TextLine></TextBlock>
</PrintSpace></alto>`
	f := newFixture(t, page, 100, 100)
	require.NoError(t, RenderFile(f.altoPath, f.config(), alto.ParseOptions{}))

	spans := loadHTML(t, f.htmlPath).Find("span")
	require.Equal(t, 2, spans.Length())
	assert.Equal(t, "EVENING HERALD", spans.First().Text())
	assert.Equal(t,
		"position: absolute; left: 0px; top: 0px; width: 90px; height: 12px;",
		spans.First().AttrOr("style", ""))
	assert.Equal(t, "Harbour", spans.Last().Text())
}

func TestRenderFailedWriteKeepsPreviousPage(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	f := newFixture(t, scenarioA, 300, 300)
	htmlDir := filepath.Join(f.dir, "html")
	require.NoError(t, os.Mkdir(htmlDir, 0o755))
	htmlPath := filepath.Join(htmlDir, "page.html")
	previous := []byte("<html><body>previous render</body></html>\n")
	require.NoError(t, os.WriteFile(htmlPath, previous, 0o644))

	require.NoError(t, os.Chmod(htmlDir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(htmlDir, 0o755) })

	cfg := f.config()
	cfg.OutputHTMLPath = htmlPath
	err := RenderFile(f.altoPath, cfg, alto.ParseOptions{})
	require.ErrorIs(t, err, alto.ErrWrite)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, previous, data)

	entries, err := os.ReadDir(htmlDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
