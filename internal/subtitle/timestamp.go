package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var timestampRegex = regexp.MustCompile(`^\s*(?:(\d+):)?(\d{1,2}):(\d{2})[,.](\d{3})\s*$`)

// splits a non-negative seconds offset into clock fields, rounding to the
// nearest millisecond and carrying a rounded 1000 into the seconds
func clockFields(seconds float64) (hours, minutes, secs, millis int64) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	whole := math.Floor(seconds)
	millis = int64(math.Round((seconds - whole) * 1000))
	total := int64(whole)
	if millis >= 1000 {
		total++
		millis -= 1000
	}

	hours = total / 3600
	minutes = (total % 3600) / 60
	secs = total % 60
	return hours, minutes, secs, millis
}

// FormatSRTTimestamp renders seconds as HH:MM:SS,mmm. Hours widen past two
// digits rather than wrapping. Negative input is treated as zero.
func FormatSRTTimestamp(seconds float64) string {
	h, m, s, ms := clockFields(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// FormatVTTTimestamp renders seconds as HH:MM:SS.mmm.
func FormatVTTTimestamp(seconds float64) string {
	h, m, s, ms := clockFields(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ParseSRTTimestamp reads HH:MM:SS,mmm (or the VTT forms HH:MM:SS.mmm and
// MM:SS.mmm) back into seconds.
func ParseSRTTimestamp(ts string) (float64, error) {
	m := timestampRegex.FindStringSubmatch(ts)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	var hours int64
	if m[1] != "" {
		h, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hours in timestamp %q: %w", ts, err)
		}
		hours = h
	}
	minutes, _ := strconv.Atoi(m[2])
	secs, _ := strconv.Atoi(m[3])
	millis, _ := strconv.Atoi(m[4])
	if minutes > 59 || secs > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: field out of range", ts)
	}

	return float64(hours*3600+int64(minutes)*60+int64(secs)) +
		float64(millis)/1000, nil
}
