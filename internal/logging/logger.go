package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"glyphsmith/internal/config"
)

// LogFileName is the file written under the configured log directory.
const LogFileName = "glyphsmith.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Path is the log file to append to. Empty means stderr.
	Path string
	// Mirror, when set, also receives every record at debug level and above
	// in console format, whatever Level says.
	Mirror io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	addSource := level.Level() <= slog.LevelDebug

	w, err := openLogFile(opts.Path)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		handler = newConsoleHandler(w, level, addSource)
	case "json":
		if handler, err = newJSONHandler(w, level, addSource); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	if opts.Mirror != nil {
		mirrorLevel := new(slog.LevelVar)
		mirrorLevel.Set(slog.LevelDebug)
		handler = TeeHandler(handler, newConsoleHandler(opts.Mirror, mirrorLevel, false))
	}
	return slog.New(handler), nil
}

// NewFromConfig builds the CLI logger. Records go to the log file only so
// they never interleave with prompt output; verbose adds a debug mirror on
// stderr.
func NewFromConfig(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	opts := Options{Level: "info", Format: "console"}
	if verbose {
		opts.Mirror = os.Stderr
	}
	if cfg == nil {
		return New(opts)
	}

	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	if cfg.Paths.LogDir != "" {
		opts.Path = filepath.Join(cfg.Paths.LogDir, LogFileName)
	}
	if verbose {
		opts.Level = "debug"
	}
	return New(opts)
}

func openLogFile(path string) (io.Writer, error) {
	path = strings.TrimSpace(path)
	switch path {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
