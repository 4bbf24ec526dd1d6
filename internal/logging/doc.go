// Package logging assembles the structured slog loggers shared by both
// front-ends.
//
// It owns the console and JSON handlers, level and output plumbing, the
// attribute helpers, and the in-memory StreamHub that feeds the daemon's
// append-only log view. Prefer these constructors over hand-rolled slog
// setup so both binaries emit log lines with the same shape.
package logging
