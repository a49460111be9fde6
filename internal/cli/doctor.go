package cli

import (
	"fmt"
	"os"
	"time"

	"arttimer/internal/progress"
	"arttimer/internal/validation"
)

// DoctorCmd runs read-only diagnostics over the configured calendar.
type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	loaded := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Calendar reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Calendar reachable: OK\n")
		loaded = true
		defer ctx.Store.Close()
	}

	if loaded {
		cal, err := ctx.Store.Calendar()
		if err != nil {
			fmt.Printf("❌ Document structure: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Document structure: OK\n")

			result := validation.New().ValidateCalendar(cal)
			if result.HasConflicts() {
				fmt.Printf("❌ Calendar validation: FAIL\n")
				for _, c := range result.Conflicts {
					fmt.Printf("   - %s\n", c.Description)
				}
				hasError = true
			} else {
				fmt.Printf("✓ Calendar validation: OK\n")
			}

			if period := cal.Program.CurrentPeriod(time.Now()); period != nil {
				if _, err := progress.NewTracker(period); err != nil {
					fmt.Printf("❌ Progress computation: FAIL\n")
					fmt.Printf("   Error: %v\n", err)
					hasError = true
				} else {
					fmt.Printf("✓ Progress computation: OK\n")
				}
			} else {
				fmt.Printf("⚠ Progress computation: no active period right now\n")
			}
		}
	}

	if _, err := time.LoadLocation("Asia/Kolkata"); err != nil {
		fmt.Printf("❌ Timezone data: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Timezone data: OK\n")
	}

	if _, err := os.Stat(ctx.LockfilePath()); err == nil {
		fmt.Printf("⚠ Lockfile present: another widget may be running (or a stale lock)\n")
	} else {
		fmt.Printf("✓ No lockfile: OK\n")
	}

	backups, err := ctx.BackupManager().List()
	switch {
	case err != nil:
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	case len(backups) == 0:
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No backups yet; one is taken on every widget start\n")
	default:
		fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
