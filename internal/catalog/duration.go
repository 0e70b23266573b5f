package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHHMMSS converts a duration in "HH:MM:SS" form to whole seconds.
// Minutes and seconds must be below 60; hours are unbounded.
func ParseHHMMSS(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid HH:MM:SS duration %q", s)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid HH:MM:SS duration %q", s)
		}
		fields[i] = n
	}

	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid HH:MM:SS duration %q", s)
	}

	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

// FormatHHMMSS renders a number of seconds as "HH:MM:SS".
// Negative values are treated as zero.
func FormatHHMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
