package subtitles_test

import (
	"os"
	"path/filepath"
	"testing"

	"whisperlite/internal/subtitles"
	"whisperlite/internal/transcribe"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCountCues(t *testing.T) {
	srt := writeFixture(t, "a.srt", subtitles.RenderSRT(renderSegments))
	count, err := subtitles.CountCues(srt)
	if err != nil {
		t.Fatalf("CountCues error: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCues = %d, want 2", count)
	}

	vtt := writeFixture(t, "a.vtt", subtitles.RenderVTT(renderSegments))
	count, err = subtitles.CountCues(vtt)
	if err != nil {
		t.Fatalf("CountCues error: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCues(vtt) = %d, want 2", count)
	}

	empty := writeFixture(t, "empty.vtt", subtitles.RenderVTT(nil))
	count, err = subtitles.CountCues(empty)
	if err != nil {
		t.Fatalf("CountCues error: %v", err)
	}
	if count != 0 {
		t.Fatalf("CountCues(empty) = %d, want 0", count)
	}
}

func TestBounds(t *testing.T) {
	segments := []transcribe.Segment{
		{Start: 1.5, End: 3, Text: "a"},
		{Start: 4, End: 9.25, Text: "b"},
	}
	path := writeFixture(t, "b.srt", subtitles.RenderSRT(segments))
	first, last, err := subtitles.Bounds(path)
	if err != nil {
		t.Fatalf("Bounds error: %v", err)
	}
	if first != 1.5 || last != 9.25 {
		t.Fatalf("Bounds = %v, %v; want 1.5, 9.25", first, last)
	}
}

func TestValidateFile(t *testing.T) {
	good := writeFixture(t, "good.srt", subtitles.RenderSRT(renderSegments))
	if issues := subtitles.ValidateFile(good); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	empty := writeFixture(t, "empty.srt", "")
	issues := subtitles.ValidateFile(empty)
	if len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("issues = %v", issues)
	}
}
