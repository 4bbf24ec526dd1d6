package subtitles

import (
	"fmt"
	"strings"

	"whisperlite/internal/transcribe"
)

// RenderText emits one trimmed line of text per segment, no timestamps.
func RenderText(segments []transcribe.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderSRT emits 1-indexed SubRip blocks separated by blank lines.
func RenderSRT(segments []transcribe.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(seg.Start, StyleComma),
			FormatTimestamp(seg.End, StyleComma),
			strings.TrimSpace(seg.Text),
		)
	}
	return b.String()
}

// RenderVTT emits a WebVTT document: header, then unnumbered cue blocks
// with period-separated milliseconds.
func RenderVTT(segments []transcribe.Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			FormatTimestamp(seg.Start, StylePeriod),
			FormatTimestamp(seg.End, StylePeriod),
			strings.TrimSpace(seg.Text),
		)
	}
	return b.String()
}

// CueLine renders the per-segment echo printed by the CLI --timestamps flag.
func CueLine(seg transcribe.Segment) string {
	return fmt.Sprintf("[%s -> %s] %s",
		FormatTimestamp(seg.Start, StyleComma),
		FormatTimestamp(seg.End, StyleComma),
		strings.TrimSpace(seg.Text),
	)
}
