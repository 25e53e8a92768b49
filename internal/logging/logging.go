// Package logging builds curator's file logger. The terminal belongs to the
// browser, so every log line goes to a rotated JSON file that the
// diagnostics view tails.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ServiceName tags every entry written by curator.
const ServiceName = "curator"

// Options controls where and how much curator logs.
type Options struct {
	Path       string    // log file; ignored when Output is set
	Level      string    // debug, info, warn, error
	Output     io.Writer // explicit destination, mainly for tests
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger is a logrus logger that owns its rotating file.
type Logger struct {
	*logrus.Logger
	closer io.Closer
}

// New creates the logger described by opts. Unknown levels fall back to info.
func New(opts Options) (*Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})

	l := &Logger{Logger: log}
	switch {
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	case strings.TrimSpace(opts.Path) != "":
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    withDefault(opts.MaxSizeMB, 10),
			MaxBackups: withDefault(opts.MaxBackups, 3),
			MaxAge:     withDefault(opts.MaxAgeDays, 28),
		}
		log.SetOutput(file)
		l.closer = file
	default:
		log.SetOutput(io.Discard)
	}

	return l, nil
}

// Service returns an entry carrying the service field, the root that
// packages derive their component loggers from.
func (l *Logger) Service() *logrus.Entry {
	return l.WithField("service", ServiceName)
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
