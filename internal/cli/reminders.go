package cli

import (
	"fmt"

	"arttimer/internal/models"
)

// RemindersCmd lists every stored reminder across the calendar.
type RemindersCmd struct{}

func (c *RemindersCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	cal, err := ctx.Store.Calendar()
	if err != nil {
		return err
	}

	count := 0
	cal.EachSession(func(ref models.SessionRef, s *models.Session) bool {
		for _, alert := range s.Alerts {
			state := "off"
			if alert.TimerEnabled.Enabled() {
				state = "on"
			}
			fmt.Printf("  %s  %-30s  %s (%s)\n",
				alert.AlertTime.Format("2006-01-02 15:04"),
				ref.String(),
				alert.Message,
				state)
			count++
		}
		return true
	})

	if count == 0 {
		fmt.Println("No reminders stored.")
		return nil
	}
	fmt.Printf("\n%d reminder(s) total.\n", count)
	return nil
}
