package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whisperlite/internal/output"
	"whisperlite/internal/transcribe"
)

var writerSegments = []transcribe.Segment{
	{Start: 0, End: 1, Text: "Hello"},
	{Start: 1, End: 2.5, Text: "world"},
}

// blockedDir returns a path that can never become a directory because its
// parent is a regular file. MkdirAll fails there even when running as root,
// which makes it a reliable stand-in for an unwritable location.
func blockedDir(t *testing.T) string {
	t.Helper()
	parent := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(parent, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	return filepath.Join(parent, "out")
}

func TestWritePlainText(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(t.TempDir(), nil)
	manifest, err := w.Write(output.Request{
		Segments: writerSegments,
		Targets:  output.Targets{Text: true},
		Dir:      dir,
		BaseName: "clip",
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if len(manifest.Paths) != 1 || manifest.Fallback {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
	data, err := os.ReadFile(filepath.Join(dir, "clip.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "Hello\nworld\n" {
		t.Fatalf("text content = %q", string(data))
	}
}

func TestWriteAllFormats(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(t.TempDir(), nil)
	manifest, err := w.Write(output.Request{
		Segments: writerSegments,
		Targets:  output.Targets{Text: true, SRT: true, VTT: true},
		Dir:      dir,
		BaseName: "clip",
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "clip.txt"),
		filepath.Join(dir, "clip.srt"),
		filepath.Join(dir, "clip.vtt"),
	}
	if len(manifest.Paths) != len(want) {
		t.Fatalf("manifest paths = %v", manifest.Paths)
	}
	for i, path := range want {
		if manifest.Paths[i] != path {
			t.Fatalf("manifest order: got %v, want %v", manifest.Paths, want)
		}
	}

	srt, err := os.ReadFile(want[1])
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	wantSRT := "1\n00:00:00,000 --> 00:00:01,000\nHello\n\n" +
		"2\n00:00:01,000 --> 00:00:02,500\nworld\n\n"
	if string(srt) != wantSRT {
		t.Fatalf("srt content = %q", string(srt))
	}

	vtt, err := os.ReadFile(want[2])
	if err != nil {
		t.Fatalf("read vtt: %v", err)
	}
	if !strings.HasPrefix(string(vtt), "WEBVTT\n\n") {
		t.Fatalf("vtt missing header: %q", string(vtt))
	}
}

func TestWriteTrimsWhitespaceInEveryFormat(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(t.TempDir(), nil)
	_, err := w.Write(output.Request{
		Segments: []transcribe.Segment{{Start: 0, End: 1, Text: "  spaced out \n"}},
		Targets:  output.Targets{Text: true, SRT: true, VTT: true},
		Dir:      dir,
		BaseName: "clip",
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	for _, ext := range []string{".txt", ".srt", ".vtt"} {
		data, err := os.ReadFile(filepath.Join(dir, "clip"+ext))
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if !strings.Contains(string(data), "spaced out\n") || strings.Contains(string(data), "  spaced out") {
			t.Fatalf("%s not trimmed: %q", ext, string(data))
		}
	}
}

func TestWriteFallsBackOnPrimaryFailure(t *testing.T) {
	fallback := filepath.Join(t.TempDir(), "fallback")
	w := output.NewWriter(fallback, nil)
	manifest, err := w.Write(output.Request{
		Segments: writerSegments,
		Targets:  output.Targets{Text: true, SRT: true},
		Dir:      blockedDir(t),
		BaseName: "clip",
	})
	if err != nil {
		t.Fatalf("expected fallback to absorb the failure, got %v", err)
	}
	if !manifest.Fallback {
		t.Fatal("manifest must flag the fallback")
	}
	if manifest.Dir != fallback {
		t.Fatalf("manifest dir = %q, want %q", manifest.Dir, fallback)
	}
	for _, path := range manifest.Paths {
		if !strings.HasPrefix(path, fallback) {
			t.Fatalf("manifest path %q outside fallback dir", path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("manifest lists unwritten file: %v", err)
		}
	}
}

func TestWriteFatalWhenFallbackAlsoFails(t *testing.T) {
	w := output.NewWriter(blockedDir(t), nil)
	_, err := w.Write(output.Request{
		Segments: writerSegments,
		Targets:  output.Targets{Text: true},
		Dir:      blockedDir(t),
		BaseName: "clip",
	})
	if err == nil {
		t.Fatal("expected fatal error when fallback also fails")
	}
}

func TestWriteRejectsEmptyRequests(t *testing.T) {
	w := output.NewWriter(t.TempDir(), nil)
	if _, err := w.Write(output.Request{Targets: output.Targets{}, BaseName: "x"}); err == nil {
		t.Fatal("expected error when no targets enabled")
	}
	if _, err := w.Write(output.Request{Targets: output.Targets{Text: true}}); err == nil {
		t.Fatal("expected error when base name missing")
	}
}

func TestResolveDir(t *testing.T) {
	fallback := filepath.Join(t.TempDir(), "fb")
	w := output.NewWriter(fallback, nil)
	if got := w.ResolveDir(""); got != fallback {
		t.Fatalf("ResolveDir(\"\") = %q", got)
	}
	if got := w.ResolveDir("/"); got != fallback {
		t.Fatalf("ResolveDir(\"/\") = %q", got)
	}
	dir := t.TempDir()
	if got := w.ResolveDir(dir); got != dir {
		t.Fatalf("ResolveDir(%q) = %q", dir, got)
	}
}

func TestBaseNameFromAudio(t *testing.T) {
	cases := map[string]string{
		"/media/talks/keynote.m4a": "keynote",
		"clip.wav":                 "clip",
		"archive.tar.gz":           "archive.tar",
		"noext":                    "noext",
		"":                         "transcript",
	}
	for in, want := range cases {
		if got := output.BaseNameFromAudio(in); got != want {
			t.Errorf("BaseNameFromAudio(%q) = %q, want %q", in, got, want)
		}
	}
}
