package models

import "time"

// AddMonths adds n calendar months to t. When the day of month does not
// exist in the target month it is clamped to that month's last day, so
// Jan 31 + 1 month is Feb 28 (or 29), never Mar 3. Wall clock time and
// location are preserved.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears adds n calendar years to t with the same clamping as AddMonths
// (Feb 29 + 1 year is Feb 28).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// CalendarDaysBetween counts the day boundaries crossed going from the civil
// date of from to the civil date of to, both read in from's location.
// It is negative when to falls on an earlier day and ignores time of day.
func CalendarDaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// SameDay reports whether a and b fall on the same civil date in a's location.
func SameDay(a, b time.Time) bool {
	return CalendarDaysBetween(a, b) == 0
}

// StartOfDay returns midnight of t's civil date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
