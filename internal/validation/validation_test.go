package validation

import (
	"testing"
	"time"

	"arttimer/internal/models"
)

func ts(year int, month time.Month, day, hour int) models.Timestamp {
	return models.NewTimestamp(time.Date(year, month, day, hour, 0, 0, 0, time.UTC))
}

func validCalendar() *models.Calendar {
	return &models.Calendar{
		Program: models.Program{
			StartDate: ts(2025, 3, 3, 0),
			EndDate:   ts(2025, 4, 25, 0),
			PlanningAndInnovation: []models.Period{
				{
					Name:      "PI Planning",
					StartDate: ts(2025, 3, 3, 0),
					EndDate:   ts(2025, 3, 7, 0),
					Activities: []models.Activity{
						{
							Day:  "1",
							Name: "Day One",
							Sessions: []models.Session{
								{Name: "Kickoff", StartDate: ts(2025, 3, 3, 9), EndDate: ts(2025, 3, 3, 10)},
								{Name: "Breakouts", StartDate: ts(2025, 3, 3, 10), EndDate: ts(2025, 3, 3, 12)},
							},
						},
					},
				},
				{
					Name:      "Innovation Week",
					StartDate: ts(2025, 3, 10, 0),
					EndDate:   ts(2025, 3, 14, 0),
				},
			},
			Iterations: []models.Period{
				{Name: "Iteration 1", StartDate: ts(2025, 3, 17, 0), EndDate: ts(2025, 3, 28, 0)},
				{Name: "Iteration 2", StartDate: ts(2025, 3, 31, 0), EndDate: ts(2025, 4, 11, 0)},
			},
		},
	}
}

func hasConflict(r Result, t ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func TestValidCalendarHasNoConflicts(t *testing.T) {
	result := New().ValidateCalendar(validCalendar())
	if result.HasConflicts() {
		t.Errorf("expected clean calendar, got: %s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("report = %q", got)
	}
}

func TestDetectsInvertedPeriod(t *testing.T) {
	cal := validCalendar()
	cal.Program.Iterations[0].StartDate = ts(2025, 3, 28, 0)
	cal.Program.Iterations[0].EndDate = ts(2025, 3, 17, 0)

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictInvertedRange) {
		t.Errorf("inverted range not detected: %s", result.FormatReport())
	}
}

func TestDetectsZeroWorkingDays(t *testing.T) {
	cal := validCalendar()
	// Sat Mar 8 through Sun Mar 9: a weekend-only period.
	cal.Program.Iterations[0].StartDate = ts(2025, 3, 8, 0)
	cal.Program.Iterations[0].EndDate = ts(2025, 3, 9, 0)

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictZeroWorkingDays) {
		t.Errorf("zero working days not detected: %s", result.FormatReport())
	}
}

func TestDetectsOverlappingIterations(t *testing.T) {
	cal := validCalendar()
	cal.Program.Iterations[1].StartDate = ts(2025, 3, 24, 0)

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictOverlappingPeriods) {
		t.Errorf("overlapping iterations not detected: %s", result.FormatReport())
	}
}

func TestDetectsSessionOutsidePeriod(t *testing.T) {
	cal := validCalendar()
	planning := &cal.Program.PlanningAndInnovation[0]
	planning.Activities[0].Sessions[0].StartDate = ts(2025, 3, 20, 9)
	planning.Activities[0].Sessions[0].EndDate = ts(2025, 3, 20, 10)

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictSessionOutsideRange) {
		t.Errorf("session outside period not detected: %s", result.FormatReport())
	}
}

func TestDetectsInvertedSession(t *testing.T) {
	cal := validCalendar()
	planning := &cal.Program.PlanningAndInnovation[0]
	planning.Activities[0].Sessions[0].StartDate = ts(2025, 3, 3, 11)
	planning.Activities[0].Sessions[0].EndDate = ts(2025, 3, 3, 9)

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictInvertedSession) {
		t.Errorf("inverted session not detected: %s", result.FormatReport())
	}
}

func TestDetectsDuplicateSessionNames(t *testing.T) {
	cal := validCalendar()
	planning := &cal.Program.PlanningAndInnovation[0]
	planning.Activities[0].Sessions[1].Name = "  kickoff  "

	result := New().ValidateCalendar(cal)
	if !hasConflict(result, ConflictDuplicateSession) {
		t.Errorf("duplicate session name not detected: %s", result.FormatReport())
	}
}
