package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gardar/altopress/pkg/alto"
)

// Job is one ALTO file and the raster its geometry refers to
type Job struct {
	Name      string // Base name used for the output tree
	AltoPath  string
	ImagePath string // Empty when no raster was found
}

// rasterExtensions in order of preference when several siblings exist
var rasterExtensions = []string{".png", ".tif", ".tiff", ".jpg", ".jpeg", ".bmp", ".gif", ".webp"}

// Discover pairs every .xml file in dir with a sibling raster of the same
// base name. Jobs come back sorted by file name. An ALTO file without a
// raster is still a job; only its HTML step will fail.
func Discover(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, alto.NotFoundError(dir, err)
	}

	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files[e.Name()] = true
		}
	}

	var jobs []Job
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		job := Job{
			Name:     name,
			AltoPath: filepath.Join(dir, e.Name()),
		}
		if raster := findRaster(files, name); raster != "" {
			job.ImagePath = filepath.Join(dir, raster)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// findRaster looks up name+ext for each known raster extension, in either case
func findRaster(files map[string]bool, name string) string {
	for _, ext := range rasterExtensions {
		for _, candidate := range []string{name + ext, name + strings.ToUpper(ext)} {
			if files[candidate] {
				return candidate
			}
		}
	}
	return ""
}
