package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DaysSinceEpoch counts whole UTC days since 1970-01-01.
func DaysSinceEpoch(t time.Time) int {
	return int(t.UTC().Unix() / 86400)
}
