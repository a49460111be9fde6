package models

import (
	"errors"
	"strings"
	"time"
)

// ErrSessionNotFound is returned when a reminder target cannot be resolved to
// a stored session.
var ErrSessionNotFound = errors.New("models: session not found")

// Calendar is the root persisted document. The program increment lives under
// the legacy "PI_1" key.
type Calendar struct {
	Program Program `json:"PI_1"`
}

// Program describes one ART: the overall window, the planning and innovation
// weeks (index 0 and 1 respectively), and the iterations that follow.
type Program struct {
	StartDate             Timestamp `json:"startDate"`
	EndDate               Timestamp `json:"endDate"`
	PlanningAndInnovation []Period  `json:"PI_PlanningAndInnovation"`
	Iterations            []Period  `json:"PI_Iterations"`
}

// Period is a named date range. Planning and innovation weeks carry
// activities; iterations do not.
type Period struct {
	StartDate  Timestamp  `json:"startDate"`
	EndDate    Timestamp  `json:"endDate"`
	Name       string     `json:"name"`
	Activities []Activity `json:"activities,omitempty"`
}

// Activity is a labeled day within a planning or innovation week.
type Activity struct {
	Day      DayLabel  `json:"day"`
	Name     string    `json:"name"`
	Sessions []Session `json:"sessions"`
}

// Session is the unit reminders attach to. Names are matched
// case-insensitively with surrounding whitespace ignored, and are only unique
// within their activity.
type Session struct {
	Name      string    `json:"name"`
	StartDate Timestamp `json:"startDate"`
	EndDate   Timestamp `json:"endDate"`
	Alerts    []Alert   `json:"alerts,omitempty"`
}

// Alert is one stored reminder. The list on a session is append-only.
type Alert struct {
	TimerEnabled TimerState `json:"timerEnabled"`
	Message      string     `json:"message"`
	AlertTime    Timestamp  `json:"alertTime"`
}

// TimerState is the persisted enabled flag. The wire format keeps the legacy
// "true"/"false" strings; values outside the two known states are preserved
// on rewrite and treated as disabled.
type TimerState string

const (
	TimerEnabled  TimerState = "true"
	TimerDisabled TimerState = "false"
)

func (t TimerState) Enabled() bool { return t == TimerEnabled }

// SessionRef identifies a session by its activity day label and name, the
// same pair used for reminder targeting.
type SessionRef struct {
	Day  string `json:"day"`
	Name string `json:"name"`
}

func (r SessionRef) String() string {
	if r.Day == "" {
		return r.Name
	}
	return r.Name + " (day " + r.Day + ")"
}

// AlertSet reports whether at least one enabled alert is attached to the
// session. Disabled or unknown-state alerts do not count.
func (s *Session) AlertSet() bool {
	for _, a := range s.Alerts {
		if a.TimerEnabled.Enabled() {
			return true
		}
	}
	return false
}

func sameDay(label DayLabel, want string) bool {
	return strings.TrimSpace(string(label)) == strings.TrimSpace(want)
}

func sameName(have, want string) bool {
	return strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want))
}

// FindSession resolves a session by activity day label and session name.
// Day labels compare by trimmed string equality, session names
// case-insensitively after trimming. The first match wins; a name may repeat
// under a different day. Returns ErrSessionNotFound when no activity or
// session matches.
func (c *Calendar) FindSession(name, day string) (*Session, error) {
	for pi := range c.Program.PlanningAndInnovation {
		period := &c.Program.PlanningAndInnovation[pi]
		for ai := range period.Activities {
			activity := &period.Activities[ai]
			if !sameDay(activity.Day, day) {
				continue
			}
			for si := range activity.Sessions {
				if sameName(activity.Sessions[si].Name, name) {
					return &activity.Sessions[si], nil
				}
			}
		}
	}
	return nil, ErrSessionNotFound
}

// EachSession calls fn for every session in the calendar together with its
// owning ref. Iteration order is document order. fn returning false stops the
// walk.
func (c *Calendar) EachSession(fn func(ref SessionRef, s *Session) bool) {
	for pi := range c.Program.PlanningAndInnovation {
		period := &c.Program.PlanningAndInnovation[pi]
		for ai := range period.Activities {
			activity := &period.Activities[ai]
			for si := range activity.Sessions {
				ref := SessionRef{
					Day:  strings.TrimSpace(string(activity.Day)),
					Name: activity.Sessions[si].Name,
				}
				if !fn(ref, &activity.Sessions[si]) {
					return
				}
			}
		}
	}
}

// ActiveSessions returns every session whose window contains now, inclusive
// of both endpoints, in document order. Sessions carry real start and end
// instants, so containment here is instant-granular, unlike the day-granular
// period check below.
func (p *Program) ActiveSessions(now time.Time) []Session {
	var active []Session
	for pi := range p.PlanningAndInnovation {
		period := &p.PlanningAndInnovation[pi]
		for ai := range period.Activities {
			for _, s := range period.Activities[ai].Sessions {
				if !now.Before(s.StartDate.Time) && !now.After(s.EndDate.Time) {
					active = append(active, s)
				}
			}
		}
	}
	return active
}

// dateOnly truncates t to midnight in its own location. Containment checks
// are day-granular on both sides.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Contains reports whether now falls inside the period, inclusive of both
// endpoint days.
func (p *Period) Contains(now time.Time) bool {
	day := dateOnly(now)
	start := dateOnly(p.StartDate.Time)
	end := dateOnly(p.EndDate.Time)
	return !day.Before(start) && !day.After(end)
}

// CurrentPeriod returns the period now falls in: the planning week first,
// then the innovation week, then the first matching iteration. Iterations
// are assumed non-overlapping, so first-match is sufficient. Returns nil when
// now is outside every range.
func (p *Program) CurrentPeriod(now time.Time) *Period {
	for i := range p.PlanningAndInnovation {
		if i > 1 {
			break
		}
		if p.PlanningAndInnovation[i].Contains(now) {
			return &p.PlanningAndInnovation[i]
		}
	}
	for i := range p.Iterations {
		if p.Iterations[i].Contains(now) {
			return &p.Iterations[i]
		}
	}
	return nil
}
