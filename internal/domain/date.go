package domain

import "time"

// DateLayout is the calendar-date format used in requests, cache tags and
// storage keys.
const DateLayout = "2006-01-02"

// NormalizeDate returns midnight UTC of t's calendar day as observed in
// t's own location. The process's local zone never affects the result.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar day. Dates that
// do not exist on the calendar are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DateKey formats a date the same way regardless of its location.
func DateKey(t time.Time) string {
	return NormalizeDate(t).Format(DateLayout)
}

// WeekRange returns the ISO week (Monday start) containing t as a
// half-open [from, to) range of UTC dates.
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := NormalizeDate(t)
	offset := (int(day.Weekday()) + 6) % 7
	from := day.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 7)
}

// MonthRange returns the calendar month containing t as a half-open
// [from, to) range of UTC dates.
func MonthRange(t time.Time) (time.Time, time.Time) {
	day := NormalizeDate(t)
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
