// Package ragtext extracts cleaned, metadata-bearing text units from an ALTO
// document for retrieval-augmented generation (RAG) indexing.
//
// Each TextBlock of the document yields exactly one Unit, in document order.
// The block's String contents are joined with single spaces and passed through
// a fixed cleaning pipeline:
//
// 1. Hyphenation correction: a hyphen followed by whitespace is removed, so
// words split across OCR line boundaries are joined again
// 2. Artifact removal: anything but ASCII letters, digits and whitespace is dropped
// 3. Case normalization: the text is lowercased
// 4. Stopword filtering: tokens in a fixed English stopword set are dropped
//
// Units carry the caller-supplied publication metadata plus the block's ID and
// geometry attributes exactly as written in the source.
//
// Main Functions:
//
// - Extract: Builds the ordered units of a parsed alto.Document
// - WriteJSON: Atomically writes units as a JSON array
// - GenerateFile: Parses an ALTO file, extracts its units and writes the JSON
package ragtext
