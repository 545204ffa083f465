// Package cli implements the sketch command-line interface.
//
// The CLI is built using cobra. Every command supports --verbose (-v) for
// debug-level logging through the charmbracelet/log library, which is also
// installed as the library logger so scene loading and frame output are
// reported the same way.
//
// # Commands
//
//   - render: Write one or more frames of a scene as PNG or SVG
//   - view: Open a live preview window that reloads the scene on change
//   - backends: List the registered frame backends
//   - material: Print resolved materials as TOML
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/gogpu/sketch"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installLogger routes sketch library logs through l.
func installLogger(l *log.Logger) {
	sketch.SetLogger(slog.New(l))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
