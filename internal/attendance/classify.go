package attendance

import (
	"time"

	"interntrack/internal/model"
)

// DayStatus classifies a single calendar day for one student.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
	StatusWeekend DayStatus = "weekend"
	StatusFuture  DayStatus = "future"
	StatusExcused DayStatus = "excused"
)

// Day is the derived view of one calendar day.
type Day struct {
	Date       string
	Status     DayStatus
	TotalHours float64
	Exception  *model.AttendanceException
}

// FindException returns the exception applying to (student, date), if
// any. A student-specific exception takes precedence over an ALL one.
func FindException(exceptions []model.AttendanceException, studentID, date string) *model.AttendanceException {
	var global *model.AttendanceException
	for i := range exceptions {
		e := &exceptions[i]
		if e.Date != date {
			continue
		}
		if e.StudentID == studentID {
			return e
		}
		if e.StudentID == model.AllStudents && global == nil {
			global = e
		}
	}
	return global
}

// Classify derives the status of one day for a student. Priority order,
// first match wins: future, present, excused, weekend, absent. A logged
// day is present even on a weekend or an excused date.
func Classify(date string, today time.Time, logs []model.LogEntry, exceptions []model.AttendanceException, studentID string) Day {
	day := Day{Date: date, Status: StatusAbsent}

	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return day
	}

	var hasLog bool
	for _, l := range logs {
		if l.StudentID == studentID && l.Date == date {
			hasLog = true
			day.TotalHours += l.HoursWorked
		}
	}
	day.Exception = FindException(exceptions, studentID, date)

	switch {
	case d.After(truncateDay(today)):
		day.Status = StatusFuture
	case hasLog:
		day.Status = StatusPresent
	case day.Exception != nil:
		day.Status = StatusExcused
	case isWeekend(d):
		day.Status = StatusWeekend
	}
	return day
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
