// Package progress converts elapsed working days into the remaining-time
// percentage and display string behind the widget's progress ring. Nothing
// here is persisted; every snapshot is recomputed from the calendar and the
// current time.
package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"arttimer/internal/models"
	"arttimer/internal/worktime"
)

// ErrInvalidRange is returned when a period contains no working days, which
// would otherwise divide by zero in the per-day decrement.
var ErrInvalidRange = errors.New("progress: period has no working days")

type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Tracker computes progress for one period. It holds only derived constants;
// all time-dependent state lives in the Snapshot.
type Tracker struct {
	Name  string
	start time.Time
	end   time.Time

	totalDays       int
	decrementPerDay float64
}

// NewTracker derives a tracker from a calendar period. Fails with
// ErrInvalidRange when the period spans zero working days.
func NewTracker(period *models.Period) (*Tracker, error) {
	total := worktime.WorkingDays(period.StartDate.Time, period.EndDate.Time)
	if total <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, period.Name)
	}
	return &Tracker{
		Name:            period.Name,
		start:           period.StartDate.Time,
		end:             period.EndDate.Time,
		totalDays:       total,
		decrementPerDay: 100 / float64(total),
	}, nil
}

// TotalWorkingDays returns the period's working-day count.
func (t *Tracker) TotalWorkingDays() int { return t.totalDays }

// Snapshot is one evaluation of the tracker at a given instant.
type Snapshot struct {
	State State

	// RemainingDays is the working days left after today. It goes negative
	// once the period is over; Display clamps it, the percentage math does
	// not.
	RemainingDays int
	Remainder     worktime.DayRemainder

	// RemainingPercent is in [0, 100]. 100 before the period starts, floored
	// at 0 after it ends; recomputing past completion stays at 0.
	RemainingPercent float64
}

// Snapshot evaluates the tracker at now.
//
// Before the start nothing has elapsed: the full day count remains and the
// percentage is 100. Once started, the inclusive working-day count treats
// today as already consumed, so one day is subtracted from both the elapsed
// and remaining counts, and the partial day is added back from the fixed-zone
// day remainder. The day count is evaluated on the fixed-zone calendar date
// so it rolls at the same instant the remainder resets, and the partial day
// is dropped on weekends, when the day count holds still; both keep the
// percentage from ticking back up as time passes.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		State:            StateInProgress,
		RemainingDays:    t.totalDays,
		RemainingPercent: 100,
	}
	if now.Before(t.start) {
		snap.State = StateNotStarted
		return snap
	}
	if now.After(t.end) {
		snap.State = StateCompleted
	}

	if now.After(t.start) {
		local := now.In(worktime.Zone())
		elapsed := worktime.WorkingDays(t.start, local) - 1
		if wd := local.Weekday(); wd != time.Saturday && wd != time.Sunday {
			snap.Remainder = worktime.RemainingTimeInDay(now)
		}
		snap.RemainingDays = t.totalDays - elapsed - 1

		pct := float64(snap.RemainingDays)*t.decrementPerDay +
			float64(snap.Remainder.Hours)/24 +
			float64(snap.Remainder.Minutes)/(24*60)
		snap.RemainingPercent = math.Max(pct, 0)
	}
	return snap
}

// Display renders the countdown line shown under the ring.
func (s Snapshot) Display() string {
	days := s.RemainingDays
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("%d Days %d Hours %d Minutes left", days, s.Remainder.Hours, s.Remainder.Minutes)
}

// Circumference returns the stroke length of a progress ring with the given
// radius.
func Circumference(radius float64) float64 {
	return 2 * math.Pi * radius
}

// DashOffset returns the stroke offset for a ring of the given circumference:
// the traversed fraction of the arc. The arc recedes as time elapses.
func (s Snapshot) DashOffset(circumference float64) float64 {
	return circumference * (1 - s.RemainingPercent/100)
}
