package api

import (
	"time"

	"whisperlite/internal/history"
	"whisperlite/internal/logging"
)

// RunToView converts a journal entry to its transport form.
func RunToView(run history.Run) RunView {
	return RunView{
		ID:                  run.ID,
		AudioPath:           run.AudioPath,
		Model:               run.Model,
		Device:              run.Device,
		ComputeType:         run.ComputeType,
		Language:            run.Language,
		LanguageProbability: run.LanguageProbability,
		DurationSeconds:     run.DurationSeconds,
		Status:              run.Status,
		ErrorMessage:        run.ErrorMessage,
		OutputPaths:         run.OutputPaths,
		FallbackUsed:        run.FallbackUsed,
		CreatedAt:           formatTime(run.CreatedAt),
		FinishedAt:          formatTime(run.FinishedAt),
	}
}

// RunsToViews converts a journal listing, preserving order.
func RunsToViews(runs []history.Run) []RunView {
	views := make([]RunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, RunToView(run))
	}
	return views
}

// LogEventToView converts a stream hub record to its transport form.
func LogEventToView(evt logging.LogEvent) LogEvent {
	return LogEvent{
		Sequence:  evt.Sequence,
		Timestamp: formatTime(evt.Timestamp),
		Level:     evt.Level,
		Message:   evt.Message,
		Fields:    evt.Fields,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeFormat)
}
