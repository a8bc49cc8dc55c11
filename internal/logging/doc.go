// Package logging provides structured logging for the berconv tool.
//
// Loggers are backed by log/slog. Text output goes through tint; JSON output
// uses the slog JSON handler with a "ts" timestamp and lower-case levels.
//
//	logger := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	    Output: "stderr",
//	})
//	logger.WithFields("format", "{iob}").Debug("encoded", "bytes", 13)
//
// Output destinations are "stdout", "stderr" or a file path. A Writer in
// Config overrides Output. NewNop returns a logger that discards everything.
package logging
