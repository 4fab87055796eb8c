package dateutil

import (
	"time"
)

// MonthStart returns midnight on the first day of date's month
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// AddMonths adds a number of calendar months to the month containing date.
// The result is a month start, so adding to the 31st never spills into the following month.
func AddMonths(date time.Time, months int) time.Time {
	return MonthStart(date).AddDate(0, months, 0)
}

// ReachDate returns the month in which a balance built up over months monthly
// contributions, starting the month after start, reaches its goal.
func ReachDate(start time.Time, months int) time.Time {
	return AddMonths(start, months)
}

// FormatMonth renders a date as e.g. "Mar 2029"
func FormatMonth(date time.Time) string {
	return date.Format("Jan 2006")
}
