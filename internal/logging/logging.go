// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	// Level is a zerolog level name. Empty means warn.
	Level string
	// Mode is TEXT for human readable lines or JSON for raw events.
	Mode string
	// File rotates logs into this path instead of writing to the fallback writer.
	File string
}

// New returns a logger and the closer of its output. Logs go to fallback
// unless opts.File is set.
func New(opts Options, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("invalid log level: %s", opts.Level)
		}
		level = lvl
	}

	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		out, closer = file, file
	}

	switch strings.ToUpper(opts.Mode) {
	case "JSON":
	case "", "TEXT":
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !isTerminal(out),
			TimeFormat: time.RFC3339,
		}
	default:
		closer.Close()
		return zerolog.Nop(), nil, fmt.Errorf("invalid log mode: %s (must be TEXT or JSON)", opts.Mode)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
