// Package logging builds the process logger: a slog text handler writing to
// stderr and, when a directory is configured, to a daily log file named
// YYYYMMDD.log of which the newest seven are kept.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/cwbudde/algo-voicefx/internal/config"
)

// DefaultKeepFiles is how many daily log files are retained.
const DefaultKeepFiles = 7

// Options configures New.
type Options struct {
	// Dir receives the daily log files. Empty disables file logging.
	Dir string
	// Level is the minimum record level.
	Level config.LogLevel
	// Stderr is the console sink; nil means os.Stderr.
	Stderr io.Writer
	// KeepFiles overrides DefaultKeepFiles when positive.
	KeepFiles uint
	// Clock overrides the rotation clock, for tests.
	Clock rotatelogs.Clock
}

// Level maps a configured level to a slog level. Unknown values map to info.
func Level(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger and a closer for its file sink. The closer is a no-op
// when file logging is disabled.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Stderr
	if console == nil {
		console = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: Level(opts.Level)}

	if opts.Dir == "" {
		return slog.New(slog.NewTextHandler(console, handlerOpts)), nopCloser{}, nil
	}

	rl, err := NewDailyFile(opts.Dir, opts.KeepFiles, opts.Clock)
	if err != nil {
		return nil, nil, err
	}

	w := io.MultiWriter(console, rl)

	return slog.New(slog.NewTextHandler(w, handlerOpts)), rl, nil
}

// NewDailyFile opens a writer that rotates at midnight into dir/YYYYMMDD.log
// and keeps the newest keep files (DefaultKeepFiles when zero).
func NewDailyFile(dir string, keep uint, clock rotatelogs.Clock) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir %q: %w", dir, err)
	}

	if keep == 0 {
		keep = DefaultKeepFiles
	}

	if clock == nil {
		clock = rotatelogs.Local
	}

	rl, err := rotatelogs.New(
		filepath.Join(dir, "%Y%m%d.log"),
		rotatelogs.WithClock(clock),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithRotationCount(keep),
	)
	if err != nil {
		return nil, fmt.Errorf("logging: open daily log in %q: %w", dir, err)
	}

	return rl, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
