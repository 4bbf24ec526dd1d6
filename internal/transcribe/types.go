package transcribe

import "context"

// Segment is one transcribed utterance span.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Info carries the detection metadata emitted alongside the segments.
// It is produced entirely by the engine and only displayed, never
// interpreted.
type Info struct {
	Language            string
	LanguageProbability float64
	Duration            float64
}

// Request describes a single transcription call.
type Request struct {
	AudioPath      string
	Language       string
	BeamSize       int
	VADFilter      bool
	WordTimestamps bool
}

// Result bundles the materialized segments with the engine metadata.
type Result struct {
	Segments []Segment
	Info     Info
}

// Transcriber runs exactly one transcription per request. Implementations
// block until the engine finishes; no cancellation beyond ctx is offered.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (Result, error)
}
