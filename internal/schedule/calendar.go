package schedule

import "time"

// MonthGrid produces the month-picker cells for a Sunday-start calendar.
// Leading cells before the first day of the month are zero time.Time values;
// the remaining cells are midnight UTC dates for each day of the month. Any
// past or future month may be requested.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]time.Time, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, time.Time{})
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
	}
	return cells
}

// PreviousMonth steps the displayed month back by one, crossing year
// boundaries without restriction.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth steps the displayed month forward by one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// MonthLabel renders the month header, e.g. "June 2025".
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Weekdays lists the grid's column headers.
func Weekdays() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}
