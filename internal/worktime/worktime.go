// Package worktime computes working-day counts and day-remainder durations
// against the program calendar.
package worktime

import (
	"time"
	_ "time/tzdata"
)

// zoneName is the fixed timezone for "time remaining in day" math. It is
// deliberately not configurable: progress percentages must agree for every
// user viewing the same shared calendar, regardless of host timezone.
const zoneName = "Asia/Kolkata"

var fixedZone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		// tzdata is linked in, so the named zone is always resolvable.
		panic("worktime: cannot load zone " + zoneName + ": " + err.Error())
	}
	return loc
}

// Zone returns the fixed calculation timezone.
func Zone() *time.Location { return fixedZone }

// DurationMinutes returns end minus start in minutes, signed and fractional.
// Callers decide what a negative duration means; nothing is clamped here.
func DurationMinutes(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// WorkingDays counts the Monday-Friday days in the inclusive date range
// [start, end]. Time-of-day is ignored on both ends: a single weekday counts
// as 1 no matter the hours involved. An inverted range counts zero days; that
// is a legitimate answer, not an error.
func WorkingDays(start, end time.Time) int {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	total := 0
	for !day.After(last) {
		if wd := day.Weekday(); wd >= time.Monday && wd <= time.Friday {
			total++
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// DayRemainder is the time left until end-of-day, split for display.
type DayRemainder struct {
	Hours   int
	Minutes int
}

// RemainingTimeInDay returns the time between now and 23:59:59.999 of the
// same day, evaluated in the fixed zone.
func RemainingTimeInDay(now time.Time) DayRemainder {
	local := now.In(fixedZone)
	endOfDay := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999e6, fixedZone)

	remaining := endOfDay.Sub(local)
	if remaining < 0 {
		remaining = 0
	}
	return DayRemainder{
		Hours:   int(remaining / time.Hour),
		Minutes: int(remaining % time.Hour / time.Minute),
	}
}
