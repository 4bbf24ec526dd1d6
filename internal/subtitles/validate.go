package subtitles

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// CountCues returns the number of non-empty cue blocks in a subtitle file.
func CountCues(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read subtitle: %w", err)
	}
	content := strings.TrimSpace(string(data))
	content = strings.TrimPrefix(content, "WEBVTT")
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, nil
	}
	blocks := strings.Split(content, "\n\n")
	count := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count, nil
}

// Bounds returns the earliest start and latest end found in a subtitle
// file's timing lines.
func Bounds(path string) (float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read subtitle: %w", err)
	}
	first := math.Inf(1)
	var last float64
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		if start, err := ParseTimestamp(parts[0]); err == nil {
			if start < first {
				first = start
			}
			found = true
		}
		if end, err := ParseTimestamp(parts[1]); err == nil && end > last {
			last = end
		}
	}
	if !found {
		return 0, last, nil
	}
	return first, last, nil
}

// ValidateFile checks a written subtitle file for structural problems.
// Returns a list of issues found; empty means validation passed.
func ValidateFile(path string) []string {
	var issues []string

	cues, err := CountCues(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("read_error: %v", err))
		return issues
	}
	if cues == 0 {
		issues = append(issues, "empty_subtitle_file")
		return issues
	}

	first, last, err := Bounds(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("timestamp_parse_error: %v", err))
	} else if first == 0 && last == 0 {
		issues = append(issues, "no_valid_timestamps")
	}

	return issues
}
