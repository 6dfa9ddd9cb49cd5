package logging

import (
	"io"
	"log/slog"
)

// Nop returns a Logger that discards everything. Useful as a default so
// components never have to nil-check their logger.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
