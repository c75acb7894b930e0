package domain

import "time"

// DateLayout is the calendar date format used by Date and NextActionDate.
const DateLayout = "2006-01-02"

// MonthBounds returns the first and last calendar day of now's month in now's location.
func MonthBounds(now time.Time) (first, last string) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// MonthKey truncates a YYYY-MM-DD date to YYYY-MM.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
