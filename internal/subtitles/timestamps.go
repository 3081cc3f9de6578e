package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSRT renders a second offset as an SRT timestamp (HH:MM:SS,mmm).
// Hours are not wrapped; a 100-hour offset renders as "100:...". Callers must
// not pass negative or non-finite values.
func FormatSRT(seconds float64) string {
	return formatTimestamp(seconds, ',')
}

// FormatVTT renders a second offset as a WebVTT timestamp (HH:MM:SS.mmm).
func FormatVTT(seconds float64) string {
	return formatTimestamp(seconds, '.')
}

// The millisecond field is derived from the original fractional seconds, not
// from the truncated total, so no carry ever propagates from milliseconds
// into the seconds field.
func formatTimestamp(seconds float64, sep byte) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int(math.Mod(seconds, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// ParseTimestamp converts an SRT or VTT timestamp back to seconds. Both the
// comma and period millisecond separators are accepted.
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
