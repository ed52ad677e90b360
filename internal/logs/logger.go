// Package logs provides the JSON-lines event logger used across linestore.
package logs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger writes JSON lines with a timestamp, event name and fields. A
// disabled Logger drops everything.
type Logger struct {
	*slog.Logger
	f *os.File
}

// Open returns a logger appending to path. An empty path, or a file that
// cannot be opened, yields a disabled logger.
func Open(path string) *Logger {
	if path == "" {
		return Disabled()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Disabled()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Disabled()
	}
	l := New(f)
	l.f = f
	return l
}

// New returns a logger writing JSON lines to w.
func New(w io.Writer) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, nil))}
}

// Disabled returns a logger that discards every event.
func Disabled() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
