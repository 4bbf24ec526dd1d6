// Package runner coordinates a single transcription run: it drives the
// engine, renders and writes the requested output formats, and records
// the run in the history store. At most one run is in flight at a time.
package runner
