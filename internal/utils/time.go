package utils

import "time"

// FormatSOSTimestamp renders the moment an alert was triggered the way
// it appears in the SMS body, e.g. "Aug 31, 2026, 2:05 PM".
func FormatSOSTimestamp(t time.Time, timezone string) string {
	if timezone == "" {
		timezone = DefaultTimeZone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return t.In(loc).Format("Jan 2, 2006, 3:04 PM")
}
