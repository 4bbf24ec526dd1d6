package testsupport

import (
	"path/filepath"
	"testing"

	"whisperlite/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The daemon bind is left to the kernel so parallel tests never collide.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.FallbackDir = filepath.Join(base, "fallback")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.Bind = "127.0.0.1:0"
	cfg.Model.Device = "cpu"

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure config directories: %v", err)
	}
	return &cfg
}

// WithModel overrides the configured model name.
func WithModel(name string) ConfigOption {
	return func(c *config.Config) {
		c.Model.Name = name
	}
}

// WithOutputs overrides the default format toggles.
func WithOutputs(srt, vtt bool) ConfigOption {
	return func(c *config.Config) {
		c.Outputs.SRT = srt
		c.Outputs.VTT = vtt
	}
}
