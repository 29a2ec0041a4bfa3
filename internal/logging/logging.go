// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options contains logger configuration options.
type Options struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the output format: console (default) or json.
	Format string

	// Output is the destination; nil means os.Stderr.
	Output io.Writer

	// NoColor disables colors in console output.
	NoColor bool
}

// New creates a logger from opts.
func New(opts Options) zerolog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	if strings.ToLower(opts.Format) != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		}
	}

	return zerolog.New(output).
		With().Timestamp().Logger().
		Level(ParseLevel(opts.Level))
}

// ParseLevel converts a string log level to zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
