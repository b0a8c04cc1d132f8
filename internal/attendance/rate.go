package attendance

import (
	"math"
	"time"

	"interntrack/internal/model"
)

// MonthStats aggregates attendance over one calendar month.
//
// Required counts weekdays that are not in the future and not excused.
// Present counts required days with a log, plus logged excused or
// weekend days. A logged day therefore always raises the numerator but
// voluntary work never inflates the denominator.
type MonthStats struct {
	Present  int
	Required int
	Rate     int
}

// MonthRate computes present/required counts and the rounded attendance
// rate (0-100) for a student's month. Rate is 0 when nothing was
// required.
func MonthRate(year int, month time.Month, today time.Time, logs []model.LogEntry, exceptions []model.AttendanceException, studentID string) MonthStats {
	var stats MonthStats
	cutoff := truncateDay(today)

	logged := make(map[string]bool)
	for _, l := range logs {
		if l.StudentID == studentID {
			logged[l.Date] = true
		}
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		if day.After(cutoff) {
			continue
		}
		date := day.Format(model.DateLayout)
		excused := FindException(exceptions, studentID, date) != nil

		switch {
		case !isWeekend(day) && !excused:
			stats.Required++
			if logged[date] {
				stats.Present++
			}
		case logged[date]:
			// Worked a weekend or excused day: present, but the day was
			// never required.
			stats.Present++
		}
	}

	if stats.Required > 0 {
		rate := int(math.Round(100 * float64(stats.Present) / float64(stats.Required)))
		if rate > 100 {
			rate = 100
		}
		stats.Rate = rate
	}
	return stats
}

// MonthDays returns the classified view of every day in a month, in
// calendar order. Used by the host to render an attendance calendar.
func MonthDays(year int, month time.Month, today time.Time, logs []model.LogEntry, exceptions []model.AttendanceException, studentID string) []Day {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]Day, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		days = append(days, Classify(date, today, logs, exceptions, studentID))
	}
	return days
}
