package display

import (
	"fmt"
	"strings"
	"time"
)

// Swapped out in tests for a fixed reference instant.
var timeNow = time.Now

// Layouts accepted for incoming timestamps, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate converts a timestamp string into a coarse relative-time phrase:
// "Just now", "5 mins ago", "2 hrs ago", "3 days ago", or an absolute
// "Jan 2, 15:04" rendering once a week has passed. The arithmetic floors, and
// each threshold belongs to the coarser bucket: exactly 60 seconds is
// "1 min ago", not "Just now". Unparseable, empty, or missing input yields "".
func FormatDate(dateString string) string {
	parsed, ok := parseDate(strings.TrimSpace(dateString))
	if !ok {
		return ""
	}

	diff := int64(timeNow().Sub(parsed) / time.Second)
	switch {
	case diff < 60:
		return "Just now"
	case diff < 3600:
		return agoPhrase(diff/60, "min")
	case diff < 86400:
		return agoPhrase(diff/3600, "hr")
	case diff < 7*86400:
		return agoPhrase(diff/86400, "day")
	default:
		return parsed.Format("Jan 2, 15:04")
	}
}

func agoPhrase(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
