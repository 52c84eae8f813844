// Package pipeline runs the HTML renderer and the RAG text extractor over a
// batch of ALTO documents.
//
// Each document is parsed once; the renderer and the extractor then run on
// the parsed tree concurrently. Documents are processed with bounded
// parallelism, and a failing document is logged and recorded in the Report
// without stopping the rest of the batch.
//
// For a document named "page" under output directory "out" the run writes:
//
//	out/page/html/page.html
//	out/page/html/style.css
//	out/page/html/images/illustration_0.png ...
//	out/page/rag/page.json
//
// Main Functions:
//
// - Discover: Finds ALTO files and their rasters in a directory
// - Run: Processes a list of jobs and reports per-document outcomes
// - LoadConfig: Reads the YAML batch configuration
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/altopress/pkg/alto"
	"github.com/gardar/altopress/pkg/htmlpage"
	"github.com/gardar/altopress/pkg/ragtext"
)

// Paths is the output tree of one document
type Paths struct {
	HTMLDir  string
	HTMLPath string
	ImageDir string
	RAGPath  string
}

// OutputPaths returns where the outputs of the named document are written
func OutputPaths(outDir, name string) Paths {
	base := filepath.Join(outDir, name)
	htmlDir := filepath.Join(base, "html")
	return Paths{
		HTMLDir:  htmlDir,
		HTMLPath: filepath.Join(htmlDir, name+".html"),
		ImageDir: filepath.Join(htmlDir, "images"),
		RAGPath:  filepath.Join(base, "rag", name+".json"),
	}
}

// Result is the outcome of one job
type Result struct {
	Job     Job
	Paths   Paths
	Err     error // Failure before either step ran (parse, setup, cancellation)
	HTMLErr error
	RAGErr  error
}

// Failed reports whether any part of the job failed
func (r Result) Failed() bool {
	return r.Err != nil || r.HTMLErr != nil || r.RAGErr != nil
}

// Error combines every failure of the job, or returns nil
func (r Result) Error() error {
	return errors.Join(r.Err, r.HTMLErr, r.RAGErr)
}

// Report holds the results of a batch in job order
type Report struct {
	Results []Result
}

// Failures returns the results that did not fully succeed
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run processes jobs into outDir. Per-document failures never abort the
// batch; once ctx is done, jobs not yet started are reported with ctx.Err().
func Run(ctx context.Context, jobs []Job, outDir string, cfg Config) Report {
	logger := getLogger(cfg)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Job: job, Paths: OutputPaths(outDir, job.Name), Err: err}
			continue
		}
		i, job := i, job
		g.Go(func() error {
			results[i] = processJob(job, outDir, cfg)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results}
	failed := len(report.Failures())
	logger.Info().
		Int("documents", len(jobs)).
		Int("succeeded", len(jobs)-failed).
		Int("failed", failed).
		Msg("Batch finished")
	return report
}

// processJob parses one document and runs both steps on it
func processJob(job Job, outDir string, cfg Config) Result {
	docLogger := getLogger(cfg).With().Str("document", job.Name).Logger()
	paths := OutputPaths(outDir, job.Name)
	res := Result{Job: job, Paths: paths}

	docLogger.Info().Str("alto", job.AltoPath).Msg("Processing document")

	doc, err := alto.ParseFile(job.AltoPath, alto.ParseOptions{Tolerant: cfg.Tolerant})
	if err != nil {
		res.Err = err
		docLogger.Error().Err(err).Msg("Failed to parse ALTO file")
		return res
	}

	if err := os.MkdirAll(filepath.Dir(paths.RAGPath), 0o755); err != nil {
		res.Err = alto.WriteError(filepath.Dir(paths.RAGPath), err)
		docLogger.Error().Err(res.Err).Msg("Failed to create output directory")
		return res
	}

	var g errgroup.Group
	g.Go(func() error {
		res.HTMLErr = renderHTML(doc, job, paths, &docLogger)
		return nil
	})
	g.Go(func() error {
		units := ragtext.Extract(doc, cfg.Metadata, ragtext.NewNormalizer(cfg.ragConfig()))
		res.RAGErr = ragtext.WriteJSON(units, paths.RAGPath)
		return nil
	})
	_ = g.Wait()

	if res.HTMLErr != nil {
		docLogger.Error().Err(res.HTMLErr).Msg("HTML generation failed")
	}
	if res.RAGErr != nil {
		docLogger.Error().Err(res.RAGErr).Msg("RAG extraction failed")
	}
	if !res.Failed() {
		docLogger.Info().Str("html", paths.HTMLPath).Str("json", paths.RAGPath).Msg("Document processed")
	}
	return res
}

// renderHTML renders the page and places the stylesheet next to it
func renderHTML(doc *alto.Document, job Job, paths Paths, logger *zerolog.Logger) error {
	if job.ImagePath == "" {
		return alto.NotFoundError(job.AltoPath, errors.New("no raster found for ALTO file"))
	}

	// The link back to the scan must resolve from the HTML file's location
	scan := job.ImagePath
	if abs, err := filepath.Abs(scan); err == nil {
		scan = abs
	}

	cfg := htmlpage.DefaultConfig()
	cfg.OriginalImagePath = scan
	cfg.OutputHTMLPath = paths.HTMLPath
	cfg.ImageDir = paths.ImageDir
	cfg.Logger = logger

	if err := os.MkdirAll(paths.HTMLDir, 0o755); err != nil {
		return alto.WriteError(paths.HTMLDir, err)
	}
	if err := htmlpage.Render(doc, cfg); err != nil {
		return err
	}
	return htmlpage.WriteStylesheet(paths.HTMLDir)
}
