package domain

import (
	"time"
	"unicode/utf8"
)

const (
	PreviewLength    = 30
	ScheduledAtShort = "2006-01-02 15:04"
)

// Preview shortens a body for listings, keeping whole runes.
func Preview(body string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(body) <= limit {
		return body
	}
	runes := []rune(body)
	return string(runes[:limit]) + "..."
}

// Label is the human readable status shown to operators.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSent:
		return "Sent"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// FormatScheduledAt renders a trigger time in the given location.
func FormatScheduledAt(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(ScheduledAtShort)
}
