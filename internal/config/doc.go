// Package config loads, normalizes, and validates WhisperLite
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every
// knob the CLI and daemon need: model selection, device and precision
// heuristics input, output format toggles, and logging.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors before any model is loaded.
package config
