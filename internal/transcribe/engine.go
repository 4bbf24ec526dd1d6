package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"whisperlite/internal/services"
)

const defaultPythonBinary = "python3"

// Options configures the out-of-process engine. Model may be a model
// name (downloaded on first use) or a path to a local CTranslate2
// bundle. Offline suppresses network access for the child process only;
// it is set automatically when a local bundle is used.
type Options struct {
	Model        string
	Device       string
	ComputeType  string
	DeviceIndex  int
	NumWorkers   int
	CPUThreads   int
	Offline      bool
	PythonBinary string
}

// Engine shells out to the embedded faster-whisper helper.
type Engine struct {
	opts Options
}

// NewEngine validates and resolves the engine options. Device "auto" is
// resolved here so the caller sees the concrete selection; the returned
// warning is non-empty when an unsupported precision was corrected.
func NewEngine(opts Options) (*Engine, string, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, "", services.Wrap(services.ErrConfiguration, "transcribe", "new engine", "model name or path is required", nil)
	}
	if err := ValidateDevice(opts.Device); err != nil {
		return nil, "", services.Wrap(services.ErrConfiguration, "transcribe", "new engine", err.Error(), nil)
	}
	opts.Device = ResolveDevice(opts.Device)
	if strings.TrimSpace(opts.ComputeType) == "" {
		opts.ComputeType = DefaultComputeType(opts.Device)
	}
	corrected, warning := NormalizeComputeType(opts.Device, opts.ComputeType)
	opts.ComputeType = corrected
	if opts.PythonBinary == "" {
		opts.PythonBinary = defaultPythonBinary
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 1
	}
	return &Engine{opts: opts}, warning, nil
}

// Model returns the model name or bundle path the engine loads.
func (e *Engine) Model() string { return e.opts.Model }

// Device returns the resolved device selector.
func (e *Engine) Device() string { return e.opts.Device }

// ComputeType returns the resolved precision string.
func (e *Engine) ComputeType() string { return e.opts.ComputeType }

type enginePayload struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
	Segments            []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs one engine invocation and materializes its segments.
func (e *Engine) Transcribe(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "transcribe", "run", "audio path is required", nil)
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "transcribe", "run", fmt.Sprintf("audio file not found: %s", req.AudioPath), err)
	}
	if req.BeamSize <= 0 {
		req.BeamSize = 5
	}

	script, err := os.CreateTemp("", "whisperlite_engine_*.py")
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "transcribe", "write helper", "failed to stage engine helper script", err)
	}
	scriptPath := script.Name()
	defer os.Remove(scriptPath)
	if _, err := script.WriteString(engineScript); err != nil {
		script.Close()
		return Result{}, services.Wrap(services.ErrTransient, "transcribe", "write helper", "failed to stage engine helper script", err)
	}
	if err := script.Close(); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "transcribe", "write helper", "failed to stage engine helper script", err)
	}

	args := []string{
		scriptPath,
		"--audio", req.AudioPath,
		"--model", e.opts.Model,
		"--device", e.opts.Device,
		"--compute-type", e.opts.ComputeType,
		"--device-index", strconv.Itoa(e.opts.DeviceIndex),
		"--num-workers", strconv.Itoa(e.opts.NumWorkers),
		"--cpu-threads", strconv.Itoa(e.opts.CPUThreads),
		"--beam-size", strconv.Itoa(req.BeamSize),
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if req.VADFilter {
		args = append(args, "--vad-filter")
	}
	if req.WordTimestamps {
		args = append(args, "--word-timestamps")
	}

	cmd := exec.CommandContext(ctx, e.opts.PythonBinary, args...) //nolint:gosec
	cmd.Env = os.Environ()
	if e.opts.Offline {
		// Scoped to the child process; nothing global is mutated.
		cmd.Env = append(cmd.Env, "HF_HUB_OFFLINE=1")
	}

	out, err := cmd.Output()
	if err != nil {
		detail := err.Error()
		if ee, ok := err.(*exec.ExitError); ok {
			if stderr := strings.TrimSpace(string(ee.Stderr)); stderr != "" {
				detail = stderr
			}
		}
		return Result{}, services.Wrap(services.ErrExternalTool, "transcribe", "run engine", detail, err)
	}

	var payload enginePayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "transcribe", "parse engine output", "engine emitted malformed JSON", err)
	}

	result := Result{
		Info: Info{
			Language:            payload.Language,
			LanguageProbability: payload.LanguageProbability,
			Duration:            payload.Duration,
		},
	}
	for _, seg := range payload.Segments {
		result.Segments = append(result.Segments, Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return result, nil
}

// LocalModelDir reports the bundled model directory under root when it
// exists and is non-empty. Engines constructed from it should run with
// Offline set so a missing cache never triggers a download.
func LocalModelDir(root, model string) (string, bool) {
	dir := filepath.Join(root, "models", model)
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return "", false
	}
	return dir, true
}
