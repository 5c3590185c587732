// Package logging assembles structured slog loggers and formatting helpers used
// across glyphsmith.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so orchestration code can tag
// log lines with job IDs and operation names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Log output is diagnostic only. Messages meant for the person at the prompt
// go through the CLI reporter, never through these loggers.
package logging
