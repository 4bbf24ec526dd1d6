package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"whisperlite/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Paths.FallbackDir != filepath.Join(tempHome, "WhisperLite") {
		t.Fatalf("unexpected fallback dir: %q", cfg.Paths.FallbackDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "whisperlite", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.Bind != "127.0.0.1:7517" {
		t.Fatalf("unexpected bind: %q", cfg.Paths.Bind)
	}
	if cfg.Model.Name != "small" || cfg.Model.Device != "auto" {
		t.Fatalf("unexpected model defaults: %+v", cfg.Model)
	}
	if cfg.Model.BeamSize != 5 {
		t.Fatalf("unexpected beam size: %d", cfg.Model.BeamSize)
	}
	if !cfg.Model.VADFilter {
		t.Fatal("expected VAD filter enabled by default")
	}
	if !cfg.Outputs.SRT || cfg.Outputs.VTT {
		t.Fatalf("unexpected output defaults: %+v", cfg.Outputs)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`output_dir = "~/transcripts"`,
		"[model]",
		`name = "large-v3"`,
		`device = "CUDA"`,
		`compute_type = "Float16"`,
		"[outputs]",
		"vtt = true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "transcripts") {
		t.Fatalf("output dir not expanded: %q", cfg.Paths.OutputDir)
	}
	if cfg.Model.Device != "cuda" || cfg.Model.ComputeType != "float16" {
		t.Fatalf("model fields not lowercased: %+v", cfg.Model)
	}
	if cfg.Model.Name != "large-v3" {
		t.Fatalf("unexpected model name: %q", cfg.Model.Name)
	}
	if !cfg.Outputs.VTT {
		t.Fatal("expected vtt enabled")
	}
	// Unset sections keep their defaults.
	if cfg.Model.BeamSize != 5 || !cfg.Outputs.SRT {
		t.Fatalf("defaults lost: %+v %+v", cfg.Model, cfg.Outputs)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"[model]\ndevice = \"tpu\"\n",
		"[model]\nbeam_size = -1\n",
		"[logging]\nformat = \"xml\"\n",
		"[logging]\nlevel = \"loud\"\n",
	}
	for _, content := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := config.Default()
	if cfg.Model.Name != defaults.Model.Name || cfg.Model.Device != defaults.Model.Device {
		t.Fatalf("sample model section diverges from defaults: %+v", cfg.Model)
	}
	if cfg.Logging.Format != defaults.Logging.Format || cfg.Logging.Level != defaults.Logging.Level {
		t.Fatalf("sample logging section diverges from defaults: %+v", cfg.Logging)
	}
}

func TestEnsureDirectories(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.FallbackDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created: %v", dir, err)
		}
	}
}
