package storage

import (
	"strconv"
	"time"

	"arttimer/internal/models"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// StarterCalendar builds the document written by `arttimer init`: a program
// increment starting the next Monday with a planning week, an innovation
// week, and two two-week iterations. Session times are placeholders the user
// edits to match their actual agenda.
func StarterCalendar(now time.Time) *models.Calendar {
	start := nextMonday(now)

	planningEnd := start.AddDate(0, 0, 4)
	innovationStart := start.AddDate(0, 0, 7)
	innovationEnd := innovationStart.AddDate(0, 0, 4)
	iter1Start := start.AddDate(0, 0, 14)
	iter1End := iter1Start.AddDate(0, 0, 11)
	iter2Start := start.AddDate(0, 0, 28)
	iter2End := iter2Start.AddDate(0, 0, 11)

	var activities []models.Activity
	for day := 0; day < 5; day++ {
		date := start.AddDate(0, 0, day)
		activities = append(activities, models.Activity{
			Day:  models.DayLabel(strconv.Itoa(day + 1)),
			Name: date.Format("Monday, Jan 2"),
			Sessions: []models.Session{
				session("Morning Session", date, 9, 0, 12, 0),
				session("Afternoon Session", date, 13, 0, 17, 0),
			},
		})
	}

	return &models.Calendar{
		Program: models.Program{
			StartDate: models.NewTimestamp(start),
			EndDate:   models.NewTimestamp(iter2End),
			PlanningAndInnovation: []models.Period{
				{
					StartDate:  models.NewTimestamp(start),
					EndDate:    models.NewTimestamp(planningEnd),
					Name:       "PI Planning",
					Activities: activities,
				},
				{
					StartDate: models.NewTimestamp(innovationStart),
					EndDate:   models.NewTimestamp(innovationEnd),
					Name:      "Innovation Week",
				},
			},
			Iterations: []models.Period{
				{
					StartDate: models.NewTimestamp(iter1Start),
					EndDate:   models.NewTimestamp(iter1End),
					Name:      "Iteration 1",
				},
				{
					StartDate: models.NewTimestamp(iter2Start),
					EndDate:   models.NewTimestamp(iter2End),
					Name:      "Iteration 2",
				},
			},
		},
	}
}

func session(name string, date time.Time, sh, sm, eh, em int) models.Session {
	return models.Session{
		Name:      name,
		StartDate: models.NewTimestamp(time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, time.UTC)),
		EndDate:   models.NewTimestamp(time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, time.UTC)),
	}
}

func nextMonday(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
