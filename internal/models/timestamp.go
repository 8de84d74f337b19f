package models

import (
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a server timestamp: epoch milliseconds as a decimal
// string, or one of the ISO-8601 layouts. Layouts without a zone are read in
// UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a server timestamp for display, or returns the raw
// value when it cannot be parsed.
func FormatTimestamp(raw string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.Format("Jan 2, 2006 15:04")
}
