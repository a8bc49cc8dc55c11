// Package logging provides structured logging for the berconv tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// slogLevel maps a Level onto the slog scale.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format represents the log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger is the interface for structured logging.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)
	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)
	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
	// WithFields returns a new logger with the given fields.
	WithFields(keysAndValues ...any) Logger
	// Close releases the log output when the logger opened it itself.
	// Loggers derived through WithFields share the output.
	Close() error
}

// Config holds the logger configuration.
type Config struct {
	Level  string
	Format string
	// Output is "stdout", "stderr" or a file path. Empty means stderr.
	Output string
	// Writer, when set, takes precedence over Output.
	Writer io.Writer
}

// logger adapts a slog.Logger to Logger.
type logger struct {
	sl     *slog.Logger
	closer io.Closer
}

// New creates a new Logger with the given configuration.
//
// A file named by Output is opened for appending. When it cannot be opened
// the logger writes to stderr instead and reports the failure as a warning.
func New(cfg Config) Logger {
	w := cfg.Writer
	var closer io.Closer
	var openErr error
	if w == nil {
		w, closer, openErr = openOutput(cfg.Output)
		if openErr != nil {
			w = os.Stderr
		}
	}
	l := &logger{
		sl:     slog.New(newHandler(w, ParseLevel(cfg.Level), ParseFormat(cfg.Format))),
		closer: closer,
	}
	if openErr != nil {
		l.Warn("cannot open log output, using stderr", "output", cfg.Output, "error", openErr)
	}
	return l
}

// NewDefault creates a new Logger writing warnings and errors as text to stderr.
func NewDefault() Logger {
	return New(Config{Level: "warn", Format: "text", Output: "stderr"})
}

// NewNop creates a no-op logger that discards all output.
func NewNop() Logger {
	return &nopLogger{}
}

// openOutput resolves output to a writer. The closer is nil for the
// standard streams.
func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func newHandler(w io.Writer, level Level, format Format) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level.slogLevel(),
			ReplaceAttr: jsonAttr,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level.slogLevel(),
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr && w != os.Stdout,
	})
}

// jsonAttr writes records with "ts" and lower-case level names.
func jsonAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
		}
	}
	return a
}

// Debug logs a debug message.
func (l *logger) Debug(msg string, keysAndValues ...any) {
	l.sl.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (l *logger) Info(msg string, keysAndValues ...any) {
	l.sl.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *logger) Warn(msg string, keysAndValues ...any) {
	l.sl.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (l *logger) Error(msg string, keysAndValues ...any) {
	l.sl.Error(msg, keysAndValues...)
}

// WithFields returns a new logger with the given fields.
func (l *logger) WithFields(keysAndValues ...any) Logger {
	return &logger{sl: l.sl.With(keysAndValues...), closer: l.closer}
}

// Close closes the log file, if any.
func (l *logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// nopLogger is a no-op logger that discards all output.
type nopLogger struct{}

func (n *nopLogger) Debug(_ string, _ ...any)   {}
func (n *nopLogger) Info(_ string, _ ...any)    {}
func (n *nopLogger) Warn(_ string, _ ...any)    {}
func (n *nopLogger) Error(_ string, _ ...any)   {}
func (n *nopLogger) WithFields(_ ...any) Logger { return n }
func (n *nopLogger) Close() error               { return nil }
