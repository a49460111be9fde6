// Package cli wires the commands behind the arttimer binary.
package cli

import (
	"fmt"
	"path/filepath"

	"arttimer/internal/backup"
	"arttimer/internal/config"
	"arttimer/internal/log"
	"arttimer/internal/storage"
)

// Context carries the shared dependencies into every command's Run.
type Context struct {
	Config *config.Config
	Store  storage.Provider
}

// BackupManager builds a manager for the configured calendar file.
func (ctx *Context) BackupManager() *backup.Manager {
	return backup.NewManager(ctx.Store.GetConfigPath(), ctx.Config.MaxBackups)
}

// PerformAutomaticBackup snapshots the calendar on widget startup. Failures
// are logged, not fatal; the widget still runs without a fresh backup.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := ctx.BackupManager()
	backupPath, err := mgr.Create()
	if err != nil {
		log.Error("automatic backup failed", err)
		return
	}
	log.Debug("automatic backup created", "file", filepath.Base(backupPath))
}

// LockfilePath places the instance lock next to the calendar document.
func (ctx *Context) LockfilePath() string {
	return filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), "widget.lock")
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
