package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-formrelay/internal/config"
)

const (
	defMaxSize  = 100
	defMaxFiles = 3
	defMaxAge   = 28
)

// Option customises New.
type Option func(*options)

type options struct {
	stdout      io.Writer
	forceColors bool
}

// WithStdout replaces os.Stderr as the destination of the stdout mode.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stdout = w
		}
	}
}

// WithForceColors forces colored text output.
func WithForceColors() Option {
	return func(o *options) {
		o.forceColors = true
	}
}

// New builds a logger from cfg. The returned closer releases the rotated
// log file in file mode and is a no-op otherwise.
func New(cfg config.LoggingConfig, opts ...Option) (*log.Logger, io.Closer, error) {
	o := options{stdout: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	formatter, err := Formatter(cfg.Format, o.forceColors)
	if err != nil {
		return nil, nil, err
	}

	level := log.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		level, err = log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
	}

	logger := log.New()
	logger.SetFormatter(formatter)
	logger.SetLevel(level)

	var closer io.Closer = nopCloser{}
	switch cfg.Mode {
	case "", "stdout":
		logger.SetOutput(o.stdout)
	case "file":
		if strings.TrimSpace(cfg.File) == "" {
			return nil, nil, fmt.Errorf("logging: file mode requires a file path")
		}
		out := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, defMaxSize),
			MaxBackups: orDefault(cfg.MaxBackups, defMaxFiles),
			MaxAge:     orDefault(cfg.MaxAgeDays, defMaxAge),
			Compress:   cfg.Compress,
		}
		logger.SetOutput(out)
		closer = out
	default:
		return nil, nil, fmt.Errorf("logging: log mode '%s' unknown", cfg.Mode)
	}

	return logger, closer, nil
}

// Formatter returns the logrus formatter for format ("text" or "json").
func Formatter(format string, forceColors bool) (log.Formatter, error) {
	switch format {
	case "text", "":
		return &log.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
			ForceColors:     forceColors,
		}, nil
	case "json":
		return &log.JSONFormatter{TimestampFormat: time.RFC3339}, nil
	default:
		return nil, fmt.Errorf("logging: unknown log_format '%s'", format)
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
