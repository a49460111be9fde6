package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"arttimer/internal/cli"
	"arttimer/internal/config"
	"arttimer/internal/log"
	"arttimer/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Settings file path." type:"path" default:"~/.config/arttimer/config.yaml"`
	Debug   bool   `help:"Enable debug logging."`

	Init      cli.InitCmd      `cmd:"" help:"Create a starter calendar."`
	Widget    cli.WidgetCmd    `cmd:"" help:"Launch the countdown widget." default:"1"`
	Status    cli.StatusCmd    `cmd:"" help:"Print the current period's countdown."`
	Remind    cli.RemindCmd    `cmd:"" help:"Store a reminder for a session."`
	Reminders cli.RemindersCmd `cmd:"" help:"List stored reminders."`
	Validate  cli.ValidateCmd  `cmd:"" help:"Check the calendar for conflicts."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run diagnostics."`
	Backup    struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a calendar backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the calendar from a backup."`
	} `cmd:"" help:"Manage calendar backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("arttimer"),
		kong.Description("ART program increment countdown widget and reminder scheduler"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if CLI.Debug {
		log.SetLevel(log.LevelDebug)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The calendar extension picks the backend.
	var store storage.Provider
	if strings.HasSuffix(cfg.CalendarPath, ".db") {
		store = storage.NewSQLiteStore(cfg.CalendarPath)
	} else {
		store = storage.NewJSONStore(cfg.CalendarPath)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
