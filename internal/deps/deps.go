// Package deps reports availability of the external pieces the engine
// shells out to: the Python interpreter and the faster-whisper package.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external dependency WhisperLite relies on.
type Requirement struct {
	Name        string
	Command     string
	Module      string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// moduleCheckTimeout bounds the interpreter probe; importing
// faster_whisper can take a moment on cold caches.
const moduleCheckTimeout = 15 * time.Second

// Check evaluates the provided requirements and reports availability.
// A Requirement with a Module set is probed by importing the module
// with the configured interpreter; otherwise only the binary is looked
// up on PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		if req.Module != "" {
			if err := checkModule(cmd, req.Module); err != nil {
				status.Detail = fmt.Sprintf("module %q not importable: %v", req.Module, err)
				results = append(results, status)
				continue
			}
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Engine returns the requirement set for the transcription engine using
// the given interpreter binary.
func Engine(pythonBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "Python interpreter",
			Command:     pythonBinary,
			Description: "Runs the transcription engine helper",
		},
		{
			Name:        "faster-whisper",
			Command:     pythonBinary,
			Module:      "faster_whisper",
			Description: "Speech-to-text engine (pip install faster-whisper)",
		},
	}
}

func checkModule(binary, module string) error {
	ctx, cancel := context.WithTimeout(context.Background(), moduleCheckTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, binary, "-c", "import "+module)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			// The last traceback line carries the actual error.
			return fmt.Errorf("%s", lastLine(msg))
		}
		return err
	}
	return nil
}

func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
