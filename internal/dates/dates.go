// Package dates does calendar arithmetic on local days.
//
// Every helper works on the calendar date of its arguments in their own
// location, so callers convert to the configured location first.
package dates

import "time"

// Layout is the persisted day format.
const Layout = "2006-01-02"

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a Layout day as midnight in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(Layout, s, loc)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// MonthKey is the YYYY-MM bucket of t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
