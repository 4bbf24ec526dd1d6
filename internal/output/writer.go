package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"whisperlite/internal/logging"
	"whisperlite/internal/services"
	"whisperlite/internal/subtitles"
	"whisperlite/internal/transcribe"
)

// Targets selects which formats a write request produces.
type Targets struct {
	Text bool
	SRT  bool
	VTT  bool
}

// Any reports whether at least one format is enabled.
func (t Targets) Any() bool { return t.Text || t.SRT || t.VTT }

// Request describes one write operation.
type Request struct {
	Segments []transcribe.Segment
	Targets  Targets
	Dir      string
	BaseName string
}

// Manifest lists the files actually written, in write order.
type Manifest struct {
	Paths    []string
	Dir      string
	Fallback bool
}

// Writer persists transcripts, falling back to a fixed directory when
// the primary location rejects writes.
type Writer struct {
	fallbackDir string
	logger      *slog.Logger
}

// NewWriter builds a writer. An empty fallbackDir selects DefaultDir();
// a nil logger is replaced with a no-op.
func NewWriter(fallbackDir string, logger *slog.Logger) *Writer {
	if strings.TrimSpace(fallbackDir) == "" {
		fallbackDir = DefaultDir()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{fallbackDir: fallbackDir, logger: logger}
}

// DefaultDir returns the fixed per-user output directory used when no
// target is supplied and as the write-failure fallback.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "WhisperLite")
	}
	return filepath.Join(home, "WhisperLite")
}

// ResolveDir substitutes the fallback directory when dir is empty or the
// filesystem root.
func (w *Writer) ResolveDir(dir string) string {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return w.fallbackDir
	}
	cleaned := filepath.Clean(trimmed)
	if cleaned == string(filepath.Separator) || cleaned == filepath.VolumeName(cleaned)+string(filepath.Separator) {
		return w.fallbackDir
	}
	return cleaned
}

// BaseNameFromAudio derives the output base name from the audio input's
// file name with its extension stripped.
func BaseNameFromAudio(audioPath string) string {
	base := filepath.Base(strings.TrimSpace(audioPath))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "transcript"
	}
	return base
}

// Write renders and writes the requested formats. On the first error in
// the primary directory the entire request is retried against the
// fallback directory; files already written at the primary location are
// left in place. A failure in the fallback directory is fatal.
func (w *Writer) Write(req Request) (Manifest, error) {
	if !req.Targets.Any() {
		return Manifest{}, services.Wrap(services.ErrValidation, "output", "write", "no output formats requested", nil)
	}
	if strings.TrimSpace(req.BaseName) == "" {
		return Manifest{}, services.Wrap(services.ErrValidation, "output", "write", "base name is required", nil)
	}

	dir := w.ResolveDir(req.Dir)
	manifest, err := w.writeAll(dir, req)
	if err == nil {
		manifest.Dir = dir
		return manifest, nil
	}

	w.logger.Warn("primary output directory rejected writes, retrying fallback",
		logging.String("dir", dir),
		logging.String("fallback_dir", w.fallbackDir),
		logging.Error(err),
	)

	manifest, fbErr := w.writeAll(w.fallbackDir, req)
	if fbErr != nil {
		return Manifest{}, services.Wrap(services.ErrTransient, "output", "write fallback",
			fmt.Sprintf("fallback directory %s also rejected writes", w.fallbackDir), fbErr)
	}
	manifest.Dir = w.fallbackDir
	manifest.Fallback = true
	return manifest, nil
}

func (w *Writer) writeAll(dir string, req Request) (Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("create output directory %q: %w", dir, err)
	}

	var manifest Manifest
	write := func(ext, content string) error {
		path := filepath.Join(dir, req.BaseName+ext)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		manifest.Paths = append(manifest.Paths, path)
		w.logger.Debug("wrote transcript file", logging.String("path", path))
		return nil
	}

	if req.Targets.Text {
		if err := write(".txt", subtitles.RenderText(req.Segments)); err != nil {
			return Manifest{}, err
		}
	}
	if req.Targets.SRT {
		if err := write(".srt", subtitles.RenderSRT(req.Segments)); err != nil {
			return Manifest{}, err
		}
		w.checkSubtitle(filepath.Join(dir, req.BaseName+".srt"))
	}
	if req.Targets.VTT {
		if err := write(".vtt", subtitles.RenderVTT(req.Segments)); err != nil {
			return Manifest{}, err
		}
		w.checkSubtitle(filepath.Join(dir, req.BaseName+".vtt"))
	}
	return manifest, nil
}

func (w *Writer) checkSubtitle(path string) {
	if issues := subtitles.ValidateFile(path); len(issues) > 0 {
		w.logger.Warn("subtitle validation reported issues",
			logging.String("path", path),
			logging.String("issues", strings.Join(issues, ", ")),
		)
	}
}
