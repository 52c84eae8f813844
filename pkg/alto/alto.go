// Package alto implements parsing of ALTO (Analyzed Layout and Text Object)
// XML, the page-layout format written by OCR engines such as Tesseract.
//
// This package provides:
//
// - A flat object model of the parts of an ALTO page the rest of altopress uses
// - Functions for parsing ALTO XML into structured Go types
// - A typed geometry model shared by the HTML renderer and the text extractor
// - The error taxonomy used by every altopress operation
//
// The ALTO hierarchy is Layout → Page → PrintSpace → (ComposedBlock) →
// TextBlock → TextLine → String. Only TextBlocks, Strings and Illustrations
// are modeled; the containers above them are flattened, so a Document holds
// its TextBlocks and Illustrations in depth-first source order. Strings found
// outside any TextBlock are kept apart as StrayStrings.
//
// Key Types:
//
// - Document: TextBlocks and Illustrations of one ALTO file
// - TextBlock: One contiguous OCR-recognized text region
// - String: A single recognized token with its geometry
// - StrayString: A String outside every TextBlock
// - Illustration: A non-text region (image or figure)
// - Geometry: A rectangle in pixel units with its origin at the top-left
//
// Main Functions:
//
// - ParseFile: Opens and parses an ALTO file
// - Parse: Parses ALTO XML from a reader
package alto
