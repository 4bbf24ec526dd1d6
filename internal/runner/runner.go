package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"whisperlite/internal/history"
	"whisperlite/internal/logging"
	"whisperlite/internal/output"
	"whisperlite/internal/services"
	"whisperlite/internal/subtitles"
	"whisperlite/internal/transcribe"
)

// ErrBusy is returned by Start when a run is already in flight.
var ErrBusy = errors.New("a transcription run is already in progress")

// Job describes one run request.
type Job struct {
	AudioPath      string
	Language       string
	BeamSize       int
	VADFilter      bool
	EchoTimestamps bool
	Targets        output.Targets
	OutputDir      string
	BaseName       string

	// Engine metadata recorded in the history journal.
	Model       string
	Device      string
	ComputeType string
}

// Summary carries the terminal state of a successful run.
type Summary struct {
	RunID    string
	Info     transcribe.Info
	Segments []transcribe.Segment
	Manifest output.Manifest
}

// Events receives run signals. Nil fields are skipped. Callbacks run on
// the run goroutine; exactly one of Done or Failed fires per run, after
// which the runner accepts the next Start.
type Events struct {
	Progress func(message string)
	Cue      func(line string)
	Done     func(summary Summary)
	Failed   func(err error)
}

// Runner executes jobs one at a time on a background goroutine.
type Runner struct {
	transcriber transcribe.Transcriber
	writer      *output.Writer
	store       *history.Store
	logger      *slog.Logger

	mu      sync.RWMutex
	running bool
	current Job
	lastErr error
	last    *Summary
	wg      sync.WaitGroup
}

// New constructs a runner. The history store may be nil, in which case
// runs are not journaled.
func New(transcriber transcribe.Transcriber, writer *output.Writer, store *history.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		transcriber: transcriber,
		writer:      writer,
		store:       store,
		logger:      logger,
	}
}

// Busy reports whether a run is currently in flight.
func (r *Runner) Busy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// Status returns the in-flight job (if any) plus the most recent
// terminal summary and error.
func (r *Runner) Status() (running bool, current Job, last *Summary, lastErr error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running, r.current, r.last, r.lastErr
}

// Wait blocks until the in-flight run, if any, reaches a terminal state.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Start validates the job and launches it on a background goroutine.
// It returns ErrBusy while a previous run has not finished. Runs are
// not cancellable once started; ctx bounds the engine call only.
func (r *Runner) Start(ctx context.Context, job Job, events Events) error {
	if err := validateJob(job); err != nil {
		return err
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	r.current = job
	r.lastErr = nil
	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(ctx, job, events)
	return nil
}

func validateJob(job Job) error {
	if strings.TrimSpace(job.AudioPath) == "" {
		return services.Wrap(services.ErrValidation, "runner", "start", "audio path is required", nil)
	}
	if _, err := os.Stat(job.AudioPath); err != nil {
		return services.Wrap(services.ErrValidation, "runner", "start", fmt.Sprintf("audio file not found: %s", job.AudioPath), err)
	}
	if !job.Targets.Any() {
		return services.Wrap(services.ErrValidation, "runner", "start", "no output formats selected", nil)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, job Job, events Events) {
	summary, err := r.execute(ctx, job, events)

	r.mu.Lock()
	r.running = false
	r.lastErr = err
	if err == nil {
		r.last = &summary
	}
	r.mu.Unlock()
	r.wg.Done()

	if err != nil {
		r.logger.Error("transcription run failed",
			logging.String("audio_path", job.AudioPath),
			logging.Error(err),
		)
		if events.Failed != nil {
			events.Failed(err)
		}
		return
	}
	if events.Done != nil {
		events.Done(summary)
	}
}

func (r *Runner) execute(ctx context.Context, job Job, events Events) (Summary, error) {
	var runID string
	if r.store != nil {
		run, err := r.store.Begin(ctx, job.AudioPath, job.Model, job.Device, job.ComputeType)
		if err != nil {
			r.logger.Warn("history journal unavailable", logging.Error(err))
		} else {
			runID = run.ID
		}
	}

	// Log lines for this run carry its journal ID so they can be
	// matched with the history entry.
	logger := r.logger
	if runID != "" {
		ctx = services.WithRequestID(ctx, runID)
		logger = logger.With(logging.RequestID(ctx))
	}

	progress := func(message string) {
		logger.Info(message, logging.String("audio_path", job.AudioPath))
		if events.Progress != nil {
			events.Progress(message)
		}
	}

	progress(fmt.Sprintf("Loading model (%s, %s)...", job.Model, job.Device))
	progress("Transcribing...")

	result, err := r.transcriber.Transcribe(ctx, transcribe.Request{
		AudioPath: job.AudioPath,
		Language:  job.Language,
		BeamSize:  job.BeamSize,
		VADFilter: job.VADFilter,
	})
	if err != nil {
		r.recordFailure(runID, err)
		return Summary{}, err
	}

	if job.EchoTimestamps && events.Cue != nil {
		for _, seg := range result.Segments {
			events.Cue(subtitles.CueLine(seg))
		}
	}

	baseName := strings.TrimSpace(job.BaseName)
	if baseName == "" {
		baseName = output.BaseNameFromAudio(job.AudioPath)
	}

	progress("Writing output files...")
	manifest, err := r.writer.Write(output.Request{
		Segments: result.Segments,
		Targets:  job.Targets,
		Dir:      job.OutputDir,
		BaseName: baseName,
	})
	if err != nil {
		r.recordFailure(runID, err)
		return Summary{}, err
	}

	if r.store != nil && runID != "" {
		info := result.Info
		if err := r.store.FinishSuccess(context.WithoutCancel(ctx), runID, info.Language, info.LanguageProbability, info.Duration, manifest.Paths, manifest.Fallback); err != nil {
			logger.Warn("failed to record run in history", logging.Error(err))
		}
	}

	return Summary{
		RunID:    runID,
		Info:     result.Info,
		Segments: result.Segments,
		Manifest: manifest,
	}, nil
}

func (r *Runner) recordFailure(runID string, cause error) {
	if r.store == nil || runID == "" {
		return
	}
	if err := r.store.FinishFailure(context.Background(), runID, cause.Error()); err != nil {
		r.logger.Warn("failed to record run failure in history", logging.Error(err))
	}
}
