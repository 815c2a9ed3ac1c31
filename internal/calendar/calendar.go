// Package calendar provides local-calendar day and week boundaries.
//
// All helpers use the location carried by the supplied time, so callers
// decide the timezone once (see config.Timezone) and pass times in it.
package calendar

import "time"

// DateLayout is the layout used for date keys such as quest set dates.
const DateLayout = "2006-01-02"

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// DateKey formats t's calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of calendar-day boundaries crossed going
// from a to b. Same day is 0, yesterday to today is 1. Negative when b is
// before a. Both times are compared in b's location.
func DaysBetween(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	// Noon UTC avoids DST hour gaps skewing the division.
	da := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// WeekStart returns Monday 00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// WeekEnd returns Sunday 23:59:59.999 of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7).Add(-time.Millisecond)
}

// HoursUntilMidnight returns the whole hours left before the next local midnight.
func HoursUntilMidnight(t time.Time) int {
	next := StartOfDay(t).AddDate(0, 0, 1)
	return int(next.Sub(t).Hours())
}
