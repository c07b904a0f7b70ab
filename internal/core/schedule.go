package core

import "time"

// NextDueDate returns the nearest upcoming date with the given due day of
// month, relative to today. If today's day has already passed the due day
// this month, the date rolls to the next month.
//
// Due days beyond the target month's length clamp to the month's last day
// (dueDay=31 in February yields Feb 28/29). Clamping was chosen over
// rolling forward so a bill due "end of month" never drifts into the next
// cycle.
func NextDueDate(dueDay int, today time.Time) time.Time {
	year, month := today.Year(), int(today.Month())
	day := clampDay(dueDay, year, month)
	if day < today.Day() {
		month++
		if month > 12 {
			month = 1
			year++
		}
		day = clampDay(dueDay, year, month)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue returns how many whole days remain until the next due date,
// with 0 meaning due today.
func DaysUntilDue(dueDay int, today time.Time) int {
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(NextDueDate(dueDay, today).Sub(midnight).Hours() / 24)
}

func clampDay(day, year, month int) int {
	last := lastDayOfMonth(year, month)
	if day > last {
		return last
	}
	return day
}

func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
