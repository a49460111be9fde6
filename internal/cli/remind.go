package cli

import (
	"fmt"

	"arttimer/internal/notify"
	"arttimer/internal/scheduler"
)

// RemindCmd stores a reminder from the command line. The reminder fires the
// given offset before the session's start; a reminder landing in the past is
// handled under the startup grace rules.
type RemindCmd struct {
	Session string `arg:"" help:"Session name (case-insensitive)."`
	Day     string `arg:"" help:"Activity day label the session belongs to."`
	Message string `arg:"" help:"Notification message."`

	Days    int `help:"Days before the session start." default:"0"`
	Hours   int `help:"Hours before the session start." default:"0"`
	Minutes int `help:"Minutes before the session start." default:"15"`
}

func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	var notifier scheduler.Notifier
	if ctx.Config.Notifications {
		notifier = notify.NewDesktop("ART Timer")
	} else {
		notifier = notify.Discard{}
	}

	// No long-lived process here: store the reminder and let it fire on the
	// next widget start. Only an already due reminder notifies right away.
	sched := scheduler.New(notifier, nil, ctx.Config.IconPath)
	defer sched.Stop()

	id, err := sched.Submit(ctx.Store, c.Session, c.Day, c.Message, c.Days, c.Hours, c.Minutes)
	if err != nil {
		return err
	}
	if id != "" {
		sched.Cancel(id)
	}

	fmt.Printf("Reminder stored for %q (day %s).\n", c.Session, c.Day)
	return nil
}
