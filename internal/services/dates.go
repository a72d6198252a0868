package services

import "time"

const dayLayout = "2006-01-02"

// DateAtLocation truncates a timestamp to its local calendar date.
// Every service function normalizes through here before comparing or
// subtracting dates, so wall-clock and timezone components never leak
// into day arithmetic.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween counts whole calendar days from one date to another.
// Both arguments are re-anchored to UTC midnights first, which keeps
// the subtraction exact across DST transitions and leap years.
func DaysBetween(from time.Time, to time.Time) int {
	fromDay := utcMidnight(from)
	toDay := utcMidnight(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func utcMidnight(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Format(dayLayout) == b.Format(dayLayout)
}

// ParseDay parses a "YYYY-MM-DD" string into a date-only value.
func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(dayLayout, raw, location)
}

// FormatDay renders a date-only value back to "YYYY-MM-DD".
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}
