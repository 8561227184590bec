package logging

import (
	"log/slog"
	"os"
)

// New returns the process logger. It writes text records to stderr so
// story output and JSON-Lines play on stdout stay clean.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: shortErrKey,
	}))
}

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// shortErrKey logs "error" attributes under "err".
func shortErrKey(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
