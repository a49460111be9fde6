package cli

import (
	"fmt"
	"time"

	"arttimer/internal/progress"
)

// StatusCmd prints the current period's countdown without starting the
// widget.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	cal, err := ctx.Store.Calendar()
	if err != nil {
		return err
	}

	now := time.Now()
	period := cal.Program.CurrentPeriod(now)
	if period == nil {
		fmt.Println("No active period right now.")
		fmt.Printf("Program runs %s through %s.\n",
			cal.Program.StartDate.Format("2006-01-02"),
			cal.Program.EndDate.Format("2006-01-02"))
		return nil
	}

	tracker, err := progress.NewTracker(period)
	if err != nil {
		return err
	}
	snap := tracker.Snapshot(now)

	fmt.Printf("%s (%s)\n", tracker.Name, snap.State)
	fmt.Println(snap.Display())
	fmt.Printf("%s of %d working days remaining\n",
		formatPercent(snap.RemainingPercent), tracker.TotalWorkingDays())
	return nil
}
