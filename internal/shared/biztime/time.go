// Package biztime centralizes time handling for the subscription engine.
// All storage and index scores use UTC; plan periods use day-granularity
// arithmetic so a 30-day plan always ends 30 calendar days after it starts.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// AddDays returns t shifted by the given number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// EpochMillis returns t as milliseconds since the Unix epoch, the unit used
// for expiration index scores.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts an expiration index score back to a UTC time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
