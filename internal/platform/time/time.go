// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// NowUTC returns the current time in UTC
func NowUTC() time.Time { return time.Now().UTC() }

// FloorDay truncates t to midnight UTC of the same day
func FloorDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MS converts a duration expressed in seconds to whole milliseconds,
// truncating fractional milliseconds the way transcript offsets are stored
func MS(seconds float64) int64 {
	return int64(seconds * 1000)
}

// FromMS converts stored milliseconds back to a time.Duration
func FromMS(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
