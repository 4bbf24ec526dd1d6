package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// TranscribeRequest is the payload accepted by POST /api/transcribe.
type TranscribeRequest struct {
	AudioPath  string `json:"audioPath"`
	Language   string `json:"language,omitempty"`
	BeamSize   int    `json:"beamSize,omitempty"`
	VADFilter  *bool  `json:"vadFilter,omitempty"`
	SRT        bool   `json:"srt"`
	VTT        bool   `json:"vtt"`
	OutputDir  string `json:"outputDir,omitempty"`
	Timestamps bool   `json:"timestamps"`
}

// TranscribeResponse acknowledges an accepted run.
type TranscribeResponse struct {
	RunID   string `json:"runId,omitempty"`
	Message string `json:"message"`
}

// RunView describes one history entry in a transport-friendly format.
type RunView struct {
	ID                  string   `json:"id"`
	AudioPath           string   `json:"audioPath"`
	Model               string   `json:"model"`
	Device              string   `json:"device"`
	ComputeType         string   `json:"computeType"`
	Language            string   `json:"language,omitempty"`
	LanguageProbability float64  `json:"languageProbability,omitempty"`
	DurationSeconds     float64  `json:"durationSeconds,omitempty"`
	Status              string   `json:"status"`
	ErrorMessage        string   `json:"errorMessage,omitempty"`
	OutputPaths         []string `json:"outputPaths,omitempty"`
	FallbackUsed        bool     `json:"fallbackUsed"`
	CreatedAt           string   `json:"createdAt,omitempty"`
	FinishedAt          string   `json:"finishedAt,omitempty"`
}

// StatusResponse summarizes daemon runtime state.
type StatusResponse struct {
	Running     bool     `json:"running"`
	PID         int      `json:"pid"`
	AudioPath   string   `json:"audioPath,omitempty"`
	Model       string   `json:"model"`
	Device      string   `json:"device"`
	ComputeType string   `json:"computeType"`
	LastError   string   `json:"lastError,omitempty"`
	LastRun     *RunView `json:"lastRun,omitempty"`
}

// LogEvent is one structured log record in the streaming payload.
type LogEvent struct {
	Sequence  uint64            `json:"sequence"`
	Timestamp string            `json:"timestamp"`
	Level     string            `json:"level"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// LogsResponse wraps a batch of log events.
type LogsResponse struct {
	Events       []LogEvent `json:"events"`
	NextSequence uint64     `json:"nextSequence"`
}

// HistoryResponse wraps the run journal listing.
type HistoryResponse struct {
	Runs []RunView `json:"runs"`
}

// ErrorResponse carries a machine-readable failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
