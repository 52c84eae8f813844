package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the command logger writing to w in the requested format.
// The level is applied to the logger itself so nothing global is touched.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q", level)
	}

	var out io.Writer
	switch format {
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
		out = w
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid log format %q (want console or json)", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// teeLogger returns a logger that also writes JSON records to file.
// Records below the base logger's level are dropped on both outputs.
// Writes are serialized since batch workers log concurrently.
func teeLogger(base zerolog.Logger, console io.Writer, format string, file io.Writer) zerolog.Logger {
	var out io.Writer = console
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}
	}
	return zerolog.New(zerolog.SyncWriter(zerolog.MultiLevelWriter(out, file))).
		Level(base.GetLevel()).
		With().Timestamp().Logger()
}
