package patterns

import "time"

// fixedHolidays maps (month, day) pairs that are holidays every year.
var fixedHolidays = map[time.Month][]int{
	time.January:  {1},
	time.July:     {4},
	time.November: {11},
	time.December: {24, 25, 31},
}

// IsHoliday reports whether t falls on a US holiday this subsystem should
// avoid recommending. Floating holidays are computed from weekday
// arithmetic, not a per-year table.
func IsHoliday(t time.Time) bool {
	month, day := t.Month(), t.Day()

	for _, d := range fixedHolidays[month] {
		if day == d {
			return true
		}
	}

	year := t.Year()

	thanksgiving := NthWeekdayOfMonth(year, time.November, time.Thursday, 4)
	if sameDate(t, thanksgiving) {
		return true
	}
	// Black Friday
	if sameDate(t, thanksgiving.AddDate(0, 0, 1)) {
		return true
	}

	if sameDate(t, LastWeekdayOfMonth(year, time.May, time.Monday)) { // Memorial Day
		return true
	}

	if sameDate(t, NthWeekdayOfMonth(year, time.September, time.Monday, 1)) { // Labor Day
		return true
	}

	return false
}

// NthWeekdayOfMonth returns the nth occurrence of a weekday in the given
// month (n is 1-based).
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// LastWeekdayOfMonth returns the final occurrence of a weekday in the
// given month.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

func sameDate(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
