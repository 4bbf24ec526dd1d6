// Package transcribe wraps the external faster-whisper engine behind a
// narrow Transcriber interface.
//
// The engine itself runs out of process: a small embedded Python helper
// loads the model, performs one transcription call, and reports segments
// plus detection metadata as JSON on stdout. This package owns the
// device and compute-type selection heuristics, local model bundle
// discovery, and the offline toggle passed to the helper's environment.
//
// The contract with the engine is deliberately thin: one call per
// request, a finite in-order sequence of segments with non-decreasing
// start times, and opaque language/probability/duration metadata.
package transcribe
