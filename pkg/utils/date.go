package utils

import "time"

// DateOnly formats a time as a YYYY-MM-DD string.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDateOnly parses a YYYY-MM-DD string.
func ParseDateOnly(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
