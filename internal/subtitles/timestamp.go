package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Style selects the millisecond separator of a subtitle dialect.
type Style int

const (
	// StyleComma renders SRT timestamps (00:00:00,000).
	StyleComma Style = iota
	// StylePeriod renders WebVTT timestamps (00:00:00.000).
	StylePeriod
)

func (s Style) separator() string {
	if s == StylePeriod {
		return "."
	}
	return ","
}

// FormatTimestamp renders a seconds offset as HH:MM:SS<sep>mmm with hours
// unbounded. Negative offsets clamp to zero. The float is converted to
// whole milliseconds first, rounding half away from zero, so decomposition
// never drifts by a millisecond against naive truncation.
func FormatTimestamp(seconds float64, style Style) string {
	totalMS := int64(math.Round(seconds * 1000))
	if totalMS < 0 {
		totalMS = 0
	}
	hours := totalMS / 3_600_000
	rem := totalMS % 3_600_000
	minutes := rem / 60_000
	rem %= 60_000
	secs := rem / 1000
	millis := rem % 1000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, style.separator(), millis)
}

// ParseTimestamp converts an SRT or WebVTT timestamp back to seconds.
// Period separators are normalized to commas so both dialects parse.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
