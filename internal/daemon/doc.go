// Package daemon binds the transcription runner, history store, and log
// stream into a single lifecycle with flock-based locking to prevent
// multiple instances, and serves the local HTTP control surface used by
// the browser front-end.
package daemon
