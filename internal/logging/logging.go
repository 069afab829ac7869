package logging

import (
	"io"
	"os"
	"time"

	"bookshelf/internal/config"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// New builds a logger from the logging configuration. When file logging is
// enabled the returned closer releases the rotating file; otherwise it is a no-op.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}
	var output io.Writer = os.Stderr

	if cfg.LogToFile {
		fileLogger := &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    cfg.MaxSize,    // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,     // days
			Compress:   cfg.Compress,
		}
		closer = fileLogger
		output = fileLogger
		if cfg.Level == "debug" {
			// debug mirrors the file to stderr
			output = io.MultiWriter(fileLogger, os.Stderr)
		}
	}

	return NewWithWriter(cfg, output), closer
}

// NewWithWriter builds a logger writing to output.
func NewWithWriter(cfg config.LoggingConfig, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == config.FormatConsole {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: output != os.Stderr}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything, for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// WithComponent returns a logger with the component field set
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
