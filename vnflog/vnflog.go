// Package vnflog provides the structured logger every component accepts
// by dependency injection, grounded on the
// artemnikitin-firework internal/agent pattern of passing a *slog.Logger
// into each constructor rather than reaching for a package-level global.
package vnflog

import (
	"io"
	"log/slog"
)

// New builds a *slog.Logger writing JSON records to w at the given
// minimum level. Every component constructor in this module (Substrate,
// Catalog, Orchestrator, ...) takes one of these.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record, for tests and
// scenarios that don't care about log output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
