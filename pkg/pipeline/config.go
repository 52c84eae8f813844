package pipeline

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gardar/altopress/pkg/ragtext"
)

// Config holds the options of a batch run
type Config struct {
	Metadata       ragtext.Metadata `yaml:"metadata"`        // Attached to every RAG unit
	Workers        int              `yaml:"workers"`         // Documents processed at once (0 = NumCPU)
	Tolerant       bool             `yaml:"tolerant"`        // Accept missing geometry attributes
	FoldAccents    bool             `yaml:"fold_accents"`    // Strip diacritics before cleaning
	ExtraStopwords []string         `yaml:"extra_stopwords"` // Added to the English stopword set
	Logger         *zerolog.Logger  `yaml:"-"`               // Custom logger (nil = discard)
}

// DefaultConfig returns a config with one worker per CPU
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// LoadConfig reads a YAML batch configuration and validates it, for example:
//
//	metadata:
//	  publication_date: "1923-04-01"
//	  newspaper_title: "The Evening Herald"
//	workers: 4
//	tolerant: false
func LoadConfig(path string) (Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ReadConfig reads a YAML configuration without validating it, so callers
// can fill missing fields from elsewhere before calling Validate.
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and fills the worker default
func (c *Config) Validate() error {
	if c.Metadata.PublicationDate == "" {
		return fmt.Errorf("metadata.publication_date is required")
	}
	if c.Metadata.NewspaperTitle == "" {
		return fmt.Errorf("metadata.newspaper_title is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// ragConfig derives the normalizer options
func (c Config) ragConfig() ragtext.Config {
	return ragtext.Config{
		FoldAccents:    c.FoldAccents,
		ExtraStopwords: c.ExtraStopwords,
		Logger:         c.Logger,
	}
}

var nopLogger = zerolog.Nop()

// getLogger returns the configured logger, or a logger that discards everything
func getLogger(cfg Config) *zerolog.Logger {
	if cfg.Logger == nil {
		return &nopLogger
	}
	return cfg.Logger
}
