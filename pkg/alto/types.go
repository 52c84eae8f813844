package alto

import "image"

// Document is the in-memory tree of one ALTO file
type Document struct {
	TextBlocks    []TextBlock    // Text regions in document order
	Illustrations []Illustration // Non-text regions in document order
	StrayStrings  []StrayString  // Strings outside every TextBlock, in document order
}

// StringCount returns the number of String tokens in the document,
// stray ones included
func (d *Document) StringCount() int {
	n := len(d.StrayStrings)
	for _, tb := range d.TextBlocks {
		n += len(tb.Strings)
	}
	return n
}

// Strings returns every String of the document in source order, merging
// block tokens with stray ones
func (d *Document) Strings() []String {
	all := make([]String, 0, d.StringCount())
	stray := d.StrayStrings
	for i, tb := range d.TextBlocks {
		for len(stray) > 0 && stray[0].BlockIndex <= i {
			all = append(all, stray[0].String)
			stray = stray[1:]
		}
		all = append(all, tb.Strings...)
	}
	for _, s := range stray {
		all = append(all, s.String)
	}
	return all
}

// TextBlock is one contiguous OCR-recognized text region
// Corresponds to ALTO element 'TextBlock'
type TextBlock struct {
	ID       string      // Optional ID attribute, not required to be unique
	Geometry Geometry    // Parsed block geometry (zero when absent)
	Raw      RawGeometry // Geometry attributes exactly as written in the source
	Strings  []String    // Tokens of all lines in this block, in order
}

// Element assigns 'TextBlock' to 'TextBlock' struct
func (TextBlock) Element() string { return "TextBlock" }

// String is a recognized token
// Corresponds to ALTO element 'String'
type String struct {
	Content  string   // CONTENT attribute, unmodified
	Geometry Geometry // Token coordinates
}

// Element assigns 'String' to 'String' struct
func (String) Element() string { return "String" }

// StrayString is a String that sits outside every TextBlock. It is drawn on
// the page but belongs to no text unit.
type StrayString struct {
	String
	BlockIndex int // Number of TextBlocks that start before it
}

// Illustration is a non-text region of the page
// Corresponds to ALTO element 'Illustration'
type Illustration struct {
	ID       string   // Optional ID attribute
	Geometry Geometry // Region coordinates
}

// Element assigns 'Illustration' to 'Illustration' struct
func (Illustration) Element() string { return "Illustration" }

// Geometry is a rectangle in pixel units, origin at the top-left of the raster
type Geometry struct {
	HPos   int // Left coordinate
	VPos   int // Top coordinate
	Width  int
	Height int
}

// NewGeometry creates a geometry from its four ALTO components
func NewGeometry(hpos, vpos, width, height int) Geometry {
	return Geometry{HPos: hpos, VPos: vpos, Width: width, Height: height}
}

// Rect returns the half-open pixel rectangle [hpos, hpos+width) x [vpos, vpos+height)
func (g Geometry) Rect() image.Rectangle {
	return image.Rect(g.HPos, g.VPos, g.HPos+g.Width, g.VPos+g.Height)
}

// RawGeometry holds geometry attribute values verbatim.
// An empty field means the attribute was absent.
type RawGeometry struct {
	HPos   string
	VPos   string
	Width  string
	Height string
}
