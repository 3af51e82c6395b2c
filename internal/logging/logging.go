package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options control the global logger.
type Options struct {
	// Verbose lowers the level to debug, which shows every external
	// command and template merge.
	Verbose bool

	// JSON switches to the slog JSON handler.
	JSON bool

	// Manual tags every record with manual=true: in manual mode the
	// logged steps describe commands that were printed, not run.
	Manual bool
}

// Logger is the global structured logger
var Logger = newLogger(os.Stderr, Options{})

func newLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Manual {
		logger = logger.With("manual", true)
	}
	return logger
}

// Setup replaces the global logger. A nil w logs to stderr.
func Setup(w io.Writer, opts Options) {
	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(w, opts)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
