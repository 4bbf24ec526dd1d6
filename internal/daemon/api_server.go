package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"whisperlite/internal/api"
	"whisperlite/internal/logging"
	"whisperlite/internal/output"
	"whisperlite/internal/runner"
	"whisperlite/internal/services"
)

// defaultFollowTimeout bounds a quiet /api/logs follow poll. It stays
// under the server WriteTimeout so idle polls end with a clean empty
// response instead of a severed connection.
const defaultFollowTimeout = 25 * time.Second

type apiServer struct {
	bind          string
	logger        *slog.Logger
	daemon        *Daemon
	followTimeout time.Duration

	listener net.Listener
	server   *http.Server
}

func newAPIServer(bind string, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:          strings.TrimSpace(bind),
		logger:        logger,
		daemon:        d,
		followTimeout: defaultFollowTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/api/transcribe", srv.handleTranscribe)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/logs", srv.handleLogs)
	mux.HandleFunc("/api/history", srv.handleHistory)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

func (s *apiServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *apiServer) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg := s.daemon.cfg
	job := runner.Job{
		AudioPath:      strings.TrimSpace(req.AudioPath),
		Language:       req.Language,
		BeamSize:       cfg.Model.BeamSize,
		VADFilter:      cfg.Model.VADFilter,
		EchoTimestamps: req.Timestamps,
		Targets:        output.Targets{Text: true, SRT: req.SRT, VTT: req.VTT},
		OutputDir:      req.OutputDir,
		Model:          s.daemon.engine.Model(),
		Device:         s.daemon.engine.Device(),
		ComputeType:    s.daemon.engine.ComputeType(),
	}
	if req.BeamSize > 0 {
		job.BeamSize = req.BeamSize
	}
	if req.VADFilter != nil {
		job.VADFilter = *req.VADFilter
	}
	if job.OutputDir == "" {
		job.OutputDir = cfg.Paths.OutputDir
	}

	events := runner.Events{
		Cue: func(line string) {
			s.log().Info(line)
		},
		Done: func(summary runner.Summary) {
			s.log().Info("Wrote: " + strings.Join(summary.Manifest.Paths, ", "))
		},
	}

	err := s.daemon.runner.Start(context.Background(), job, events)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusAccepted, api.TranscribeResponse{Message: "transcription started"})
	case errors.Is(err, runner.ErrBusy):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status()
	running, current, last, lastErr := s.daemon.runner.Status()

	payload := api.StatusResponse{
		Running:     running,
		PID:         os.Getpid(),
		Model:       status.Model,
		Device:      status.Device,
		ComputeType: status.ComputeType,
	}
	if running {
		payload.AudioPath = current.AudioPath
	}
	if lastErr != nil {
		payload.LastError = lastErr.Error()
	}
	if last != nil && last.RunID != "" {
		if run, err := s.daemon.store.GetByID(r.Context(), last.RunID); err == nil && run != nil {
			view := api.RunToView(*run)
			payload.LastRun = &view
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	hub := s.daemon.hub
	if hub == nil {
		s.writeJSON(w, http.StatusOK, api.LogsResponse{Events: nil, NextSequence: 0})
		return
	}

	query := r.URL.Query()
	since, _ := strconv.ParseUint(query.Get("since"), 10, 64)
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = 200
	}
	follow := query.Get("follow") == "1" || strings.EqualFold(query.Get("follow"), "true")

	if query.Get("tail") == "1" && since == 0 && !follow {
		raw, cursor := hub.Tail(limit)
		s.writeJSON(w, http.StatusOK, api.LogsResponse{Events: convertLogEvents(raw), NextSequence: cursor})
		return
	}

	fetchCtx := r.Context()
	if follow {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, s.followTimeout)
		defer cancel()
	}
	raw, cursor, err := hub.Fetch(fetchCtx, since, limit, follow)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.LogsResponse{Events: convertLogEvents(raw), NextSequence: cursor})
}

func (s *apiServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	runs, err := s.daemon.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.HistoryResponse{Runs: api.RunsToViews(runs)})
}

func convertLogEvents(events []logging.LogEvent) []api.LogEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]api.LogEvent, 0, len(events))
	for _, evt := range events {
		out = append(out, api.LogEventToView(evt))
	}
	return out
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
