package ragtext

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Metadata is the caller-supplied publication context attached verbatim to every unit
type Metadata struct {
	PublicationDate string `yaml:"publication_date" json:"publication_date"`
	NewspaperTitle  string `yaml:"newspaper_title" json:"newspaper_title"`
}

// MetadataFromMap builds Metadata from a key/value mapping.
// Both publication_date and newspaper_title must be present.
func MetadataFromMap(m map[string]string) (Metadata, error) {
	date, ok := m["publication_date"]
	if !ok {
		return Metadata{}, fmt.Errorf("metadata is missing publication_date")
	}
	title, ok := m["newspaper_title"]
	if !ok {
		return Metadata{}, fmt.Errorf("metadata is missing newspaper_title")
	}
	return Metadata{PublicationDate: date, NewspaperTitle: title}, nil
}

// Config holds the options of the text normalizer
type Config struct {
	FoldAccents    bool            // Strip diacritics before artifact removal ("café" -> "cafe")
	ExtraStopwords []string        // Added to the built-in English stopword set
	Logger         *zerolog.Logger // Custom logger (nil = discard)
}

// DefaultConfig returns the plain four-step pipeline
func DefaultConfig() Config {
	return Config{}
}

var nopLogger = zerolog.Nop()

// getLogger returns the configured logger, or a logger that discards everything
func getLogger(cfg Config) *zerolog.Logger {
	if cfg.Logger == nil {
		return &nopLogger
	}
	return cfg.Logger
}
