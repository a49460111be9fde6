package cli

import (
	"fmt"

	"arttimer/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load calendar: %w", err)
	}
	defer ctx.Store.Close()

	cal, err := ctx.Store.Calendar()
	if err != nil {
		return err
	}

	fmt.Println("Validating calendar...")
	result := validation.New().ValidateCalendar(cal)
	fmt.Println(result.FormatReport())

	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
