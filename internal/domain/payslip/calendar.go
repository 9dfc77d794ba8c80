package payslip

import "time"

// DaysInMonth returns the day count for the given month, accounting for leap
// February. A month outside [1,12] fails fast rather than normalizing.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, ErrInvalidMonth
	}
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Day(), nil
}
