package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// defaultEnginePayload is the JSON a healthy engine run emits.
const defaultEnginePayload = `{
  "language": "en",
  "language_probability": 0.97,
  "duration": 3.0,
  "segments": [
    {"start": 0.0, "end": 1.5, "text": " hello there"},
    {"start": 1.5, "end": 3.0, "text": " general"}
  ]
}`

// StubEngine installs a python3 stand-in on PATH that prints a canned
// transcription payload. Pass an empty script to use the default payload.
func StubEngine(t testing.TB, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub engine scripts require a POSIX shell")
	}
	if script == "" {
		script = "cat <<'JSON'\n" + defaultEnginePayload + "\nJSON"
	}
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "python3")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write engine stub: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// WriteAudio drops a small placeholder audio file into a temp directory
// and returns its path.
func WriteAudio(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}
