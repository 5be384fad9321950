package subset

import (
	"fmt"
	"strings"
	"time"
)

// Accepted forms for the --time flag values. CMR itself wants ISO 8601; user
// input is looser.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a user-supplied timestamp into UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	var lastErr error
	for _, format := range timeFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, lastErr)
}

// FormatTemporal builds the "start,end" ISO 8601 range value shared by the
// CMR temporal parameter and the EGI time parameter.
func FormatTemporal(start, end string) (string, error) {
	s, err := ParseTime(start)
	if err != nil {
		return "", fmt.Errorf("start time: %w", err)
	}
	e, err := ParseTime(end)
	if err != nil {
		return "", fmt.Errorf("end time: %w", err)
	}
	if e.Before(s) {
		return "", fmt.Errorf("end time %s is before start time %s", end, start)
	}
	const iso = "2006-01-02T15:04:05Z"
	return s.Format(iso) + "," + e.Format(iso), nil
}
