package domain

import "time"

// DayFormat is the fixed-width calendar-day key used everywhere a date is
// stored or compared. Because the format is zero-padded YYYY-MM-DD,
// lexicographic order of day keys equals chronological order. History
// sorting and the streak scan rely on this invariant.
const DayFormat = "2006-01-02"

// Day returns the day key for t in t's location.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a day key back into a midnight-UTC time.
func ParseDay(key string) (time.Time, error) {
	return time.Parse(DayFormat, key)
}
