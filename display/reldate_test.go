package display

import (
	"strings"
	"testing"
	"time"
)

// Pin the clock to a fixed instant so every bucket boundary is exact.
func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func TestFormatDate_Buckets(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"30 seconds", 30 * time.Second, "Just now"},
		{"59 seconds", 59 * time.Second, "Just now"},
		{"exactly 60 seconds", 60 * time.Second, "1 min ago"},
		{"5 minutes", 5 * time.Minute, "5 mins ago"},
		{"59 minutes 59 seconds", 59*time.Minute + 59*time.Second, "59 mins ago"},
		{"exactly 1 hour", time.Hour, "1 hr ago"},
		{"2 hours", 2 * time.Hour, "2 hrs ago"},
		{"23 hours", 23 * time.Hour, "23 hrs ago"},
		{"exactly 24 hours", 24 * time.Hour, "1 day ago"},
		{"3 days", 3 * 24 * time.Hour, "3 days ago"},
		{"6 days 23 hours", 6*24*time.Hour + 23*time.Hour, "6 days ago"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := now.Add(-tc.elapsed).Format(time.RFC3339)
			if got := FormatDate(input); got != tc.want {
				t.Errorf("FormatDate(now - %v) = %q, expected %q", tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestFormatDate_AbsoluteBeyondAWeek(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	input := now.Add(-8 * 24 * time.Hour).Format(time.RFC3339) // 2024-01-07T12:00:00Z
	got := FormatDate(input)

	if strings.Contains(got, "ago") {
		t.Errorf("Expected absolute rendering beyond a week, got %q", got)
	}
	if !strings.Contains(got, "Jan") {
		t.Errorf("Expected a month abbreviation, got %q", got)
	}
	if !strings.Contains(got, "12:00") {
		t.Errorf("Expected a time-of-day token, got %q", got)
	}
}

func TestFormatDate_InvalidInput(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	for _, input := range []string{"", "not-a-date", "   ", "2024-13-45T99:99:99Z"} {
		if got := FormatDate(input); got != "" {
			t.Errorf("FormatDate(%q) = %q, expected empty string", input, got)
		}
	}
}

func TestFormatDate_FutureTimestamp(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	// A slightly-future timestamp (clock skew) still reads as "Just now".
	input := now.Add(30 * time.Second).Format(time.RFC3339)
	if got := FormatDate(input); got != "Just now" {
		t.Errorf("FormatDate(future) = %q, expected %q", got, "Just now")
	}
}

func TestFormatDate_AcceptedLayouts(t *testing.T) {
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	withFixedNow(t, now)

	for _, input := range []string{
		"2024-01-15T11:55:00Z",
		"2024-01-15T11:55:00.250Z",
		"2024-01-15T11:55:00",
		"2024-01-15 11:55:00",
	} {
		if got := FormatDate(input); got != "5 mins ago" {
			t.Errorf("FormatDate(%q) = %q, expected %q", input, got, "5 mins ago")
		}
	}
}
