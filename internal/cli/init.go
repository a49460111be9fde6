package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized calendar at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Edit the generated periods and sessions, then run 'arttimer' to start the widget.")
	return nil
}
