// Package cli implements the foldout command-line interface.
//
// The commands create, inspect, convert and edit outline documents stored
// as JSON, TOML or YAML, and draw them as diagrams. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - demo: Build the sample outline and print it
//   - new: Create an empty outline with the configured columns
//   - show: Print an outline as an indented tree or rendered markdown
//   - convert: Rewrite an outline in another format
//   - render: Draw an outline as a DOT, SVG or PNG diagram
//   - edit: Edit an outline interactively with undo and redo
//   - cache: Manage the rendered diagram cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and undo history activity is logged
// through an observability hook.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered outline.svg (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
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

// historyLogger reports undo history activity at debug level and
// failures as warnings.
type historyLogger struct {
	logger *log.Logger
}

func newHistoryLogger(l *log.Logger) *historyLogger {
	return &historyLogger{logger: l.WithPrefix("history")}
}

func (h *historyLogger) OnRun(command string, err error)  { h.report("run", command, err) }
func (h *historyLogger) OnUndo(command string, err error) { h.report("undo", command, err) }
func (h *historyLogger) OnRedo(command string, err error) { h.report("redo", command, err) }

func (h *historyLogger) report(op, command string, err error) {
	if err != nil {
		h.logger.Warn(op+" failed", "command", command, "error", err)
		return
	}
	h.logger.Debug(op, "command", command)
}
