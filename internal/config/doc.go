// Package config loads, normalizes, and validates glyphsmith configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GLYPHSMITH_ENGINE. The Config type centralizes every knob the CLI needs,
// allowing the engine binary, operation scripts, and scratch directories to be
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
