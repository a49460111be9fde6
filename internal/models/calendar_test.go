package models

import (
	"encoding/json"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) Timestamp {
	return NewTimestamp(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func testCalendar() *Calendar {
	return &Calendar{
		Program: Program{
			StartDate: date(2025, time.March, 3),
			EndDate:   date(2025, time.May, 23),
			PlanningAndInnovation: []Period{
				{
					StartDate: date(2025, time.March, 3),
					EndDate:   date(2025, time.March, 7),
					Name:      "Planning",
					Activities: []Activity{
						{
							Day:  "1",
							Name: "Day 1",
							Sessions: []Session{
								{Name: "Business Context", StartDate: NewTimestamp(time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)), EndDate: NewTimestamp(time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC))},
								{Name: "Team Breakouts", StartDate: NewTimestamp(time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC)), EndDate: NewTimestamp(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))},
							},
						},
						{
							Day:  "2",
							Name: "Day 2",
							Sessions: []Session{
								{Name: "Team Breakouts", StartDate: NewTimestamp(time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)), EndDate: NewTimestamp(time.Date(2025, time.March, 4, 11, 0, 0, 0, time.UTC))},
							},
						},
					},
				},
				{
					StartDate: date(2025, time.March, 10),
					EndDate:   date(2025, time.March, 14),
					Name:      "Innovation",
				},
			},
			Iterations: []Period{
				{StartDate: date(2025, time.March, 17), EndDate: date(2025, time.March, 28), Name: "Iteration 1"},
				{StartDate: date(2025, time.March, 31), EndDate: date(2025, time.April, 11), Name: "Iteration 2"},
			},
		},
	}
}

func TestFindSessionMatchesCaseInsensitiveAndTrimmed(t *testing.T) {
	cal := testCalendar()

	s, err := cal.FindSession("  business context ", "1")
	if err != nil {
		t.Fatalf("FindSession failed: %v", err)
	}
	if s.Name != "Business Context" {
		t.Errorf("expected Business Context, got %q", s.Name)
	}
}

func TestFindSessionScopedToDay(t *testing.T) {
	cal := testCalendar()

	s, err := cal.FindSession("Team Breakouts", "2")
	if err != nil {
		t.Fatalf("FindSession failed: %v", err)
	}
	if got := s.StartDate.Day(); got != 4 {
		t.Errorf("expected day-2 session (March 4), got day %d", got)
	}

	// Same name exists under day 1 as well; day scoping must pick that one.
	s, err = cal.FindSession("Team Breakouts", " 1 ")
	if err != nil {
		t.Fatalf("FindSession failed: %v", err)
	}
	if got := s.StartDate.Day(); got != 3 {
		t.Errorf("expected day-1 session (March 3), got day %d", got)
	}
}

func TestFindSessionNotFound(t *testing.T) {
	cal := testCalendar()

	if _, err := cal.FindSession("No Such Session", "1"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := cal.FindSession("Business Context", "9"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound for unknown day, got %v", err)
	}
}

func TestAlertSet(t *testing.T) {
	cases := []struct {
		name    string
		session Session
		want    bool
	}{
		{"no alerts", Session{}, false},
		{"disabled only", Session{Alerts: []Alert{{TimerEnabled: TimerDisabled}}}, false},
		{"enabled", Session{Alerts: []Alert{{TimerEnabled: TimerEnabled}}}, true},
		{"mixed", Session{Alerts: []Alert{{TimerEnabled: TimerDisabled}, {TimerEnabled: TimerEnabled}}}, true},
		{"unknown state", Session{Alerts: []Alert{{TimerEnabled: "maybe"}}}, false},
	}
	for _, tc := range cases {
		if got := tc.session.AlertSet(); got != tc.want {
			t.Errorf("%s: AlertSet() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestActiveSessions(t *testing.T) {
	cal := testCalendar()
	prog := &cal.Program

	got := prog.ActiveSessions(time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC))
	if len(got) != 1 || got[0].Name != "Business Context" {
		t.Fatalf("mid-session: got %+v, want Business Context", got)
	}

	// Both endpoints are inclusive.
	got = prog.ActiveSessions(time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC))
	if len(got) != 1 || got[0].Name != "Business Context" {
		t.Errorf("at end instant: got %+v, want Business Context", got)
	}
	got = prog.ActiveSessions(time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC))
	if len(got) != 1 || got[0].Name != "Team Breakouts" {
		t.Errorf("at start instant: got %+v, want Team Breakouts", got)
	}

	// The gap between sessions and times outside any session yield nothing.
	if got = prog.ActiveSessions(time.Date(2025, time.March, 3, 10, 15, 0, 0, time.UTC)); len(got) != 0 {
		t.Errorf("between sessions: got %+v, want none", got)
	}
	if got = prog.ActiveSessions(time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)); len(got) != 0 {
		t.Errorf("sessionless day: got %+v, want none", got)
	}
}

func TestCurrentPeriod(t *testing.T) {
	cal := testCalendar()
	prog := &cal.Program

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"planning week", time.Date(2025, time.March, 5, 15, 0, 0, 0, time.UTC), "Planning"},
		{"planning start inclusive", time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), "Planning"},
		{"planning end inclusive", time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC), "Planning"},
		{"innovation week", time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC), "Innovation"},
		{"first iteration", time.Date(2025, time.March, 20, 9, 0, 0, 0, time.UTC), "Iteration 1"},
		{"second iteration", time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC), "Iteration 2"},
	}
	for _, tc := range cases {
		p := prog.CurrentPeriod(tc.now)
		if p == nil {
			t.Errorf("%s: expected %q, got nil", tc.name, tc.want)
			continue
		}
		if p.Name != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, p.Name)
		}
	}
}

func TestCurrentPeriodOutsideAllRanges(t *testing.T) {
	cal := testCalendar()
	prog := &cal.Program

	// Weekend gap between iteration 1 and iteration 2.
	if p := prog.CurrentPeriod(time.Date(2025, time.March, 29, 12, 0, 0, 0, time.UTC)); p != nil {
		t.Errorf("expected nil in iteration gap, got %q", p.Name)
	}
	// Before the whole program.
	if p := prog.CurrentPeriod(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)); p != nil {
		t.Errorf("expected nil before program start, got %q", p.Name)
	}
	// After the whole program.
	if p := prog.CurrentPeriod(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)); p != nil {
		t.Errorf("expected nil after program end, got %q", p.Name)
	}
}

func TestEachSessionVisitsAllWithRefs(t *testing.T) {
	cal := testCalendar()

	var refs []SessionRef
	cal.EachSession(func(ref SessionRef, s *Session) bool {
		refs = append(refs, ref)
		return true
	})

	if len(refs) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(refs))
	}
	if refs[0].Day != "1" || refs[0].Name != "Business Context" {
		t.Errorf("unexpected first ref: %+v", refs[0])
	}
	if refs[2].Day != "2" || refs[2].Name != "Team Breakouts" {
		t.Errorf("unexpected last ref: %+v", refs[2])
	}
}

func TestTimestampParseVariants(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2025-03-03"`, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)},
		{`"2025-03-03T09:30"`, time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)},
		{`"2025-03-03T09:30:15"`, time.Date(2025, time.March, 3, 9, 30, 15, 0, time.UTC)},
		{`"2025-03-03T09:30:15Z"`, time.Date(2025, time.March, 3, 9, 30, 15, 0, time.UTC)},
	}
	for _, tc := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.in), &ts); err != nil {
			t.Errorf("unmarshal %s: %v", tc.in, err)
			continue
		}
		if !ts.Time.Equal(tc.want) {
			t.Errorf("unmarshal %s: got %v, want %v", tc.in, ts.Time, tc.want)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`"not a date"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestTimestampMarshalsUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := NewTimestamp(time.Date(2025, time.March, 3, 15, 0, 0, 0, loc))

	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2025-03-03T09:30:00Z"` {
		t.Errorf("expected UTC instant, got %s", out)
	}
}

func TestDayLabelAcceptsNumberOrString(t *testing.T) {
	var d DayLabel
	if err := json.Unmarshal([]byte(`1`), &d); err != nil {
		t.Fatalf("numeric label: %v", err)
	}
	if d != "1" {
		t.Errorf("expected \"1\", got %q", d)
	}
	if err := json.Unmarshal([]byte(`"Day 2"`), &d); err != nil {
		t.Fatalf("string label: %v", err)
	}
	if d != "Day 2" {
		t.Errorf("expected \"Day 2\", got %q", d)
	}
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Error("expected error for boolean day label")
	}
}
