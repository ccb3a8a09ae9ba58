package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, serviceName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", serviceName, sessionStart.Format("20060102_150405")),
	)
}

// ParseLevel converts a string log level to a zerolog level, defaulting
// to info for unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Options configures logger construction.
type Options struct {
	Level          string
	ConsoleWriter  io.Writer // defaults to stderr
	FilePath       string    // empty disables the file writer
	GraylogAddress string    // empty disables GELF shipping
}

// New builds the service logger: console plus optional session log
// file plus optional GELF writer. A GELF connection failure downgrades
// to the remaining writers rather than failing startup.
func New(opts Options) (zerolog.Logger, error) {
	console := opts.ConsoleWriter
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return zerolog.Nop(), fmt.Errorf("error creating logs dir: %w", err)
		}
		file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("error opening log file: %w", err)
		}
		writers = append(writers, file)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Logger().
		Level(ParseLevel(opts.Level))

	if opts.GraylogAddress != "" {
		gelfWriter, err := gelf.NewWriter(opts.GraylogAddress)
		if err != nil {
			logger.Warn().Err(err).Str("address", opts.GraylogAddress).
				Msg("Failed to connect GELF writer, continuing without Graylog")
		} else {
			writers = append(writers, gelfWriter)
			logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
				With().Timestamp().Logger().
				Level(ParseLevel(opts.Level))
		}
	}

	return logger, nil
}
