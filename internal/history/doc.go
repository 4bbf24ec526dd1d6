// Package history persists a journal of transcription runs in SQLite.
//
// Each run records the request (audio, model, device), the engine's
// detection metadata, and the files written, so both the CLI history
// command and the daemon's run list can show what happened after the
// fact. The journal is advisory: a failure to record never fails a run.
package history
