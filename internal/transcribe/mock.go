package transcribe

import "context"

// MockTranscriber returns a canned result without touching the engine.
// Used by runner and daemon tests.
type MockTranscriber struct {
	Result Result
	Err    error
	Calls  int
}

func (m *MockTranscriber) Transcribe(_ context.Context, _ Request) (Result, error) {
	m.Calls++
	if m.Err != nil {
		return Result{}, m.Err
	}
	return m.Result, nil
}
