package attendance

import (
	"sort"
	"time"

	"interntrack/internal/model"
)

// StreakThreshold is the consecutive-day run that triggers the streak
// badge.
const StreakThreshold = 5

// LogDates returns the distinct, ascending calendar dates a student has
// logged on.
func LogDates(logs []model.LogEntry, studentID string) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, l := range logs {
		if l.StudentID != studentID || seen[l.Date] {
			continue
		}
		seen[l.Date] = true
		dates = append(dates, l.Date)
	}
	sort.Strings(dates)
	return dates
}

// StreakReached reports whether a run of exactly-consecutive days ever
// reaches the threshold. Scanning stops at the first run that qualifies:
// an earlier five-day streak counts even when the latest run is shorter.
// Malformed dates break the run.
func StreakReached(dates []string, threshold int) bool {
	if threshold <= 0 {
		return len(dates) > 0
	}
	streak := 0
	var prev time.Time
	for i, ds := range dates {
		d, err := time.Parse(model.DateLayout, ds)
		if err != nil {
			streak = 0
			prev = time.Time{}
			continue
		}
		if i > 0 && !prev.IsZero() && d.Sub(prev) == 24*time.Hour {
			streak++
		} else {
			streak = 1
		}
		if streak >= threshold {
			return true
		}
		prev = d
	}
	return false
}
