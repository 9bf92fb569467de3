// Package logging wires zerolog to the console and, optionally, a
// rotating log file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the logger sinks.
type Options struct {
	Level    string
	FilePath string // empty disables the file sink
}

// New creates a logger writing to stderr and, when FilePath is set, to a
// size-rotated file.
func New(opts Options) zerolog.Logger {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.FilePath,
				MaxSize:    50, // megabytes
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			})
		}
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
