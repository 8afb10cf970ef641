// Package logging assembles structured slog loggers and formatting helpers used
// across tubelist commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command code can tag log
// lines with the running command, the playlist title, and the invocation
// correlation ID. The package also provides a no-op logger for tests and
// for library code that is handed no logger.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
