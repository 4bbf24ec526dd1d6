// Package services defines shared error markers and context helpers consumed
// by the transcription runner and external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into the kinds surfaced to the CLI and daemon (configuration vs
//     external tool vs transient write problems).
//   - Context helpers that stamp request identifiers for logging.
//
// Use these helpers when wiring new run logic so error handling and
// observability stay uniform across both front-ends.
package services
