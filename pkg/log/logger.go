package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	closer io.Closer
	level  slog.Level

	// stderr is the fallback destination. Tests swap it for a buffer.
	stderr io.Writer = os.Stderr
)

// Init initializes the global logger.
// It configures the default slog logger to write to the specified path (or stderr)
// at the specified level. Any attrs are attached to every record, which is how a
// single run is tagged in a shared log file.
//
// path: Log file path. If empty, logs to stderr so generated output on stdout stays clean.
// lvl: Log level ("debug", "info", "warn", "error"). Defaults to "info".
func Init(path string, lvl string, attrs ...any) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	var w io.Writer = stderr
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		closer = f
		w = f
	}

	level = ParseLevel(lvl)
	opts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewTextHandler(w, opts))
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	slog.SetDefault(logger)
	return nil
}

// Close releases the log file opened by Init, if any, and points the
// default logger back at stderr so later records are not lost.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	return closeLocked()
}

func closeLocked() error {
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
