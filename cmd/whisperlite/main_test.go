package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"whisperlite/internal/services"
	"whisperlite/internal/testsupport"
)

func writeTestConfig(t *testing.T) (configPath, outDir string) {
	t.Helper()
	base := t.TempDir()
	outDir = filepath.Join(base, "out")
	content := `[paths]
output_dir = "` + outDir + `"
fallback_dir = "` + filepath.Join(base, "fallback") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[model]
name = "small"
device = "cpu"
`
	configPath = filepath.Join(base, "whisperlite.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, outDir
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestTranscribeCommandWritesOutputs(t *testing.T) {
	testsupport.StubEngine(t, "")
	configPath, outDir := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	stdout, _, err := runCommand(t, "--config", configPath, "transcribe", audio, "--srt")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}

	if !strings.Contains(stdout, "Detected language: English") {
		t.Fatalf("expected detected language line, got:\n%s", stdout)
	}
	var wroteLine string
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if strings.HasPrefix(line, "Wrote: ") {
			wroteLine = line
		}
	}
	if wroteLine == "" {
		t.Fatalf("expected Wrote: line, got:\n%s", stdout)
	}
	paths := strings.Split(strings.TrimPrefix(wroteLine, "Wrote: "), ", ")
	if len(paths) != 2 {
		t.Fatalf("expected txt and srt paths, got %v", paths)
	}
	for _, p := range paths {
		if filepath.Dir(p) != outDir {
			t.Fatalf("expected outputs under %s, got %s", outDir, p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing output %s: %v", p, err)
		}
	}
}

func TestTranscribeCommandHonorsOutputBaseName(t *testing.T) {
	testsupport.StubEngine(t, "")
	configPath, outDir := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	stdout, _, err := runCommand(t, "--config", configPath, "transcribe", audio, "--output", "meeting")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	for _, name := range []string{"meeting.txt", "meeting.srt"} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing %s: %v\noutput:\n%s", path, err, stdout)
		}
	}
}

func TestTranscribeCommandEchoesTimestamps(t *testing.T) {
	testsupport.StubEngine(t, "")
	configPath, _ := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	stdout, _, err := runCommand(t, "--config", configPath, "transcribe", audio, "--timestamps")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if !strings.Contains(stdout, "[00:00:00,000 -> 00:00:01,500] hello there") {
		t.Fatalf("expected cue echo, got:\n%s", stdout)
	}
}

func TestTranscribeCommandRejectsUnknownLanguage(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	_, _, err := runCommand(t, "--config", configPath, "transcribe", audio, "--language", "klingon")
	if err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}

func TestTranscribeCommandSurfacesComputeCorrection(t *testing.T) {
	testsupport.StubEngine(t, "")
	configPath, _ := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	_, stderr, err := runCommand(t, "--config", configPath, "transcribe", audio, "--compute-type", "float16")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if !strings.Contains(stderr, "int8") {
		t.Fatalf("expected compute correction warning, got:\n%s", stderr)
	}
}

func TestHistoryCommandListsRuns(t *testing.T) {
	testsupport.StubEngine(t, "")
	configPath, _ := writeTestConfig(t)
	audio := testsupport.WriteAudio(t)

	if _, _, err := runCommand(t, "--config", configPath, "transcribe", audio); err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}

	stdout, _, err := runCommand(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, filepath.Base(audio)) {
		t.Fatalf("expected audio basename in history, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "succeeded") {
		t.Fatalf("expected succeeded status, got:\n%s", stdout)
	}
}

func TestRenderErrorFlagsConfigurationMistakes(t *testing.T) {
	cfgErr := services.Wrap(services.ErrConfiguration, "transcribe", "new engine", "unknown device", nil)
	rendered := renderError(cfgErr)
	if !strings.Contains(rendered, "unknown device") {
		t.Fatalf("expected original message preserved, got %q", rendered)
	}
	if !strings.Contains(rendered, "whisperlite config show") {
		t.Fatalf("expected configuration hint, got %q", rendered)
	}

	plain := errors.New("engine blew up")
	if got := renderError(plain); got != "engine blew up" {
		t.Fatalf("expected runtime errors unchanged, got %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("é", 30)
	got := truncate(long, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 9)+"…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if truncate("short", 10) != "short" {
		t.Fatal("expected short strings unchanged")
	}
}

func TestDoctorCommandReportsStubEngine(t *testing.T) {
	testsupport.StubEngine(t, "exit 0")
	configPath, _ := writeTestConfig(t)

	stdout, _, err := runCommand(t, "--config", configPath, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(stdout, "faster-whisper") {
		t.Fatalf("expected dependency listing, got:\n%s", stdout)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	stdout, _, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target path in output, got:\n%s", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}
