package gold

import (
	"strconv"
	"strings"
)

// rainKeywords mark a condition as rain via case-insensitive substring match.
var rainKeywords = []string{"rain", "drizzle", "thunderstorm", "storm"}

const (
	lunchStartSeconds = 11 * 3600
	lunchEndSeconds   = 14 * 3600
)

// IsRainCondition reports whether a weather condition text counts as rain.
func IsRainCondition(condition string) bool {
	lower := strings.ToLower(condition)
	for _, kw := range rainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsLunchTime reports whether an HH:MM:SS clock time falls inside the
// [11:00, 14:00] window, inclusive on both ends.
func IsLunchTime(clock string) bool {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return false
	}

	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}

	secs := h*3600 + m*60 + s
	return secs >= lunchStartSeconds && secs <= lunchEndSeconds
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
