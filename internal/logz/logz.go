// Package logz holds the process-wide zerolog logger. Packages derive
// their own sub-logger from it with a "module" field.
package logz

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var Logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.Kitchen,
}).With().Timestamp().Logger()

// Options configure Setup.
type Options struct {
	Level string
	// JSON disables the console writer.
	JSON bool
	// File, when set, receives a JSON copy of every entry.
	File io.Writer
}

// Setup replaces Logger according to opts.
func Setup(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if opts.JSON {
		out = os.Stderr
	}
	if opts.File != nil {
		out = zerolog.MultiLevelWriter(out, opts.File)
	}
	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

// Module returns a sub-logger tagged with name.
func Module(name string) zerolog.Logger {
	return Logger.With().Str("module", name).Logger()
}
