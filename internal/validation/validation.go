// Package validation checks a loaded calendar for problems the progress and
// scheduler code would otherwise trip over at runtime.
package validation

import (
	"fmt"

	"arttimer/internal/models"
	"arttimer/internal/worktime"
)

// ConflictType classifies a detected calendar problem.
type ConflictType string

const (
	ConflictInvertedRange       ConflictType = "inverted_range"
	ConflictZeroWorkingDays     ConflictType = "zero_working_days"
	ConflictOverlappingPeriods  ConflictType = "overlapping_periods"
	ConflictSessionOutsideRange ConflictType = "session_outside_range"
	ConflictInvertedSession     ConflictType = "inverted_session"
	ConflictDuplicateSession    ConflictType = "duplicate_session"
)

// Conflict is one detected problem.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
}

// Result collects the conflicts from one validation pass.
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

func (r *Result) add(t ConflictType, desc string, items ...string) {
	r.Conflicts = append(r.Conflicts, Conflict{Type: t, Description: desc, Items: items})
}

// Validator checks calendar documents.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateCalendar runs every check over the document.
func (v *Validator) ValidateCalendar(cal *models.Calendar) Result {
	result := Result{Conflicts: []Conflict{}}

	var all []*models.Period
	for i := range cal.Program.PlanningAndInnovation {
		all = append(all, &cal.Program.PlanningAndInnovation[i])
	}
	var iterations []*models.Period
	for i := range cal.Program.Iterations {
		p := &cal.Program.Iterations[i]
		all = append(all, p)
		iterations = append(iterations, p)
	}

	for _, p := range all {
		v.checkPeriod(p, &result)
	}
	v.checkIterationOverlap(iterations, &result)

	for i := range cal.Program.PlanningAndInnovation {
		v.checkActivities(&cal.Program.PlanningAndInnovation[i], &result)
	}

	return result
}

// checkPeriod flags ranges the progress engine cannot divide by.
func (v *Validator) checkPeriod(p *models.Period, result *Result) {
	if p.EndDate.Before(p.StartDate.Time) {
		result.add(ConflictInvertedRange,
			fmt.Sprintf("Period %q ends before it starts (%s > %s)",
				p.Name, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02")),
			p.Name)
		return
	}
	if worktime.WorkingDays(p.StartDate.Time, p.EndDate.Time) == 0 {
		result.add(ConflictZeroWorkingDays,
			fmt.Sprintf("Period %q contains no working days", p.Name),
			p.Name)
	}
}

func (v *Validator) checkIterationOverlap(iterations []*models.Period, result *Result) {
	for i := 0; i < len(iterations); i++ {
		for j := i + 1; j < len(iterations); j++ {
			a, b := iterations[i], iterations[j]
			if a.Contains(b.StartDate.Time) || a.Contains(b.EndDate.Time) || b.Contains(a.StartDate.Time) {
				result.add(ConflictOverlappingPeriods,
					fmt.Sprintf("Iterations %q and %q overlap", a.Name, b.Name),
					a.Name, b.Name)
			}
		}
	}
}

func (v *Validator) checkActivities(period *models.Period, result *Result) {
	for ai := range period.Activities {
		activity := &period.Activities[ai]
		seen := map[string]bool{}
		for si := range activity.Sessions {
			sess := &activity.Sessions[si]

			if sess.EndDate.Before(sess.StartDate.Time) {
				result.add(ConflictInvertedSession,
					fmt.Sprintf("Session %q on day %s ends before it starts", sess.Name, activity.Day),
					sess.Name)
			}

			if !period.Contains(sess.StartDate.Time) {
				result.add(ConflictSessionOutsideRange,
					fmt.Sprintf("Session %q on day %s starts outside period %q",
						sess.Name, activity.Day, period.Name),
					sess.Name, period.Name)
			}

			// Reminder targeting resolves the first match only, so a
			// duplicate name within one activity shadows the later session.
			key := normalizedName(sess.Name)
			if seen[key] {
				result.add(ConflictDuplicateSession,
					fmt.Sprintf("Session %q appears more than once on day %s", sess.Name, activity.Day),
					sess.Name)
			}
			seen[key] = true
		}
	}
}
