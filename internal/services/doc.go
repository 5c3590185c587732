// Package services defines shared utilities consumed by the job orchestrator
// and the engine integration.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs and operation names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into the user-facing categories (input, configuration, engine).
//
// Use these helpers when wiring new operations so error reporting and log
// correlation stay uniform across the CLI.
package services
