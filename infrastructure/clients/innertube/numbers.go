package innertube

import (
	"strconv"
	"strings"
	"time"
)

// ParseCount normalizes numeric-ish display strings such as "1,234,567
// views", "1.2M views" or "12 B" into an integer. Returns 0 when nothing
// numeric is present.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var numPart strings.Builder
	suffix := ""
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			numPart.WriteRune(r)
		case r == '.':
			numPart.WriteRune(r)
		case r == ',' || r == ' ' || r == ' ':
			// thousands separators
		default:
			suffix = strings.ToUpper(strings.TrimSpace(s[i:]))
			goto done
		}
	}
done:
	base, err := strconv.ParseFloat(numPart.String(), 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.HasPrefix(suffix, "K"):
		base *= 1e3
	case strings.HasPrefix(suffix, "M"):
		base *= 1e6
	case strings.HasPrefix(suffix, "B"):
		base *= 1e9
	}
	return int64(base)
}

// ParseDuration converts a "12:34" / "1:02:03" display string into seconds.
// Returns 0 for anything else (live badges, empty strings).
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// ParseInstant parses an ISO-8601 instant if present; nil otherwise.
func ParseInstant(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
