// Package lockfile enforces a single running widget instance per config
// directory. The calendar document is rewritten whole on every mutation, so
// two concurrent processes would silently overwrite each other's reminders.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned by Acquire when a live process holds the lock.
var ErrAlreadyRunning = errors.New("lockfile: another instance is already running")

var findProcessFunc = ps.FindProcess

// Lock is a held instance lock. Release it on shutdown; a crashed process
// leaves the file behind, which the next Acquire detects as stale via the
// recorded pid.
type Lock struct {
	path string
}

// Acquire writes "<pid>|<executable>" to path after verifying no live holder
// exists. A lockfile whose pid is dead or belongs to a different executable
// is treated as stale and replaced.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("lockfile: %w", err)
	}

	if holder, ok := liveHolder(path); ok {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, holder)
	}

	content := fmt.Sprintf("%d|%s", os.Getpid(), executableName())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("lockfile: %w", err)
	}
	return nil
}

// liveHolder reports the pid in the lockfile when that process is still
// running the same executable.
func liveHolder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}
	if !strings.HasPrefix(process.Executable(), parts[1]) {
		return 0, false
	}
	return pid, true
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return "arttimer"
	}
	return filepath.Base(exe)
}
