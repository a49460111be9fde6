package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"arttimer/internal/lockfile"
	"arttimer/internal/log"
	"arttimer/internal/notify"
	"arttimer/internal/scheduler"
	"arttimer/internal/tui"
)

// WidgetCmd runs the interactive widget: countdown dashboard, session
// browser, reminder submission, and the armed reminder timers. The default
// command.
type WidgetCmd struct{}

func (c *WidgetCmd) Run(ctx *Context) error {
	lock, err := lockfile.Acquire(ctx.LockfilePath())
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// Diagnostics go to a file while the widget owns the terminal.
	logPath := filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), "widget.log")
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	ctx.PerformAutomaticBackup()

	var notifier scheduler.Notifier
	if ctx.Config.Notifications {
		notifier = notify.NewDesktop("ART Timer")
	} else {
		notifier = notify.Discard{}
	}

	sink := &tui.ProgramSink{}
	sched := scheduler.New(notifier, sink, ctx.Config.IconPath)
	defer sched.Stop()

	model, err := tui.NewModel(ctx.Store, sched)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	sink.Program = p

	// Reconcile stored reminders once the program can receive events.
	go func() {
		cal, err := ctx.Store.Calendar()
		if err != nil {
			log.Error("failed to schedule reminders", err)
			return
		}
		sched.ScheduleAll(cal)
	}()

	// Daily refresh re-snapshots progress after the working-day rollover.
	cr := cron.New()
	if _, err := cr.AddFunc(ctx.Config.RefreshCron, func() {
		p.Send(tui.RefreshMsg{})
	}); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", ctx.Config.RefreshCron, err)
	}
	cr.Start()
	defer cr.Stop()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "widget error: %v\n", err)
		os.Exit(1)
	}
	return nil
}
