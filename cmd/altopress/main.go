// altopress is a command-line tool for turning ALTO XML OCR output into a pixel-faithful HTML page
// and into normalized, metadata-tagged text units for retrieval-augmented generation (RAG).
//
// The html command positions every recognized word over the page at its scanned coordinates,
// crops each illustration out of the page raster and links back to the original scan.
// The rag command cleans the text of each TextBlock (hyphenation repair, artifact removal,
// lowercasing, English stopword filtering) and writes one JSON unit per block.
// The batch command runs both over a directory of ALTO files with their page rasters.
//
// Configuration:
//
// The rag and batch commands read the newspaper metadata from a YAML file:
//
//	metadata:
//	  publication_date: "1923-04-01"
//	  newspaper_title: "The Evening Herald"
//	workers: 4            # batch only, 0 = one per CPU
//	tolerant: false       # accept String/Illustration elements without geometry
//	fold_accents: false   # strip diacritics before cleaning
//	extra_stopwords: []   # added to the English stopword list
//
// Usage:
//
//	altopress html --alto page.xml --image page.png --output out/page.html [--image-dir out/images]
//	altopress rag --alto page.xml --output page.json --config config.yml
//	altopress rag --alto page.xml --output page.json --publication-date 1923-04-01 --newspaper-title "The Evening Herald"
//	altopress batch --input scans/ --output out/ --config config.yml
//
// Global flags:
//
//	--log-level string   trace, debug, info, warn or error (default "info")
//	--log-format string  console or json (default "console")
//	--tolerant           Accept String and Illustration elements without geometry
//
// Batch output:
//
// For every page.xml with a sibling page.png (or .tif, .jpg, .bmp, .gif, .webp) the batch command writes
//
//	out/page/html/page.html
//	out/page/html/style.css
//	out/page/html/images/illustration_N.png
//	out/page/rag/page.json
//
// and a JSON log of the run to out/logs/pipeline.log. A failing document is logged and skipped;
// the exit code is non-zero when any document failed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
