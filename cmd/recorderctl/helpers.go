package main

import (
	"fmt"
	"strings"
	"time"

	"recorderctl/internal/recorder"
)

// sinceLayouts are accepted by --since, tried in order.
var sinceLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSince(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range sinceLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use RFC 3339 or YYYY-MM-DD)", value)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// formatOffset renders a millisecond offset as m:ss.
func formatOffset(ms int64) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func requireRecordingID(args []string) (string, error) {
	id := strings.TrimSpace(args[0])
	if !recorder.ValidRecordingID(id) {
		return "", fmt.Errorf("%q does not look like a recording id (expected a UUID from 'recorderctl list')", id)
	}
	return id, nil
}
