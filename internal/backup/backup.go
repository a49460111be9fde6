// Package backup snapshots the calendar document before risky operations and
// keeps a bounded rotation of previous copies.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"arttimer/internal/log"
	"arttimer/internal/models"
)

const (
	DefaultMaxBackups = 5
	backupDirName     = "backups"
	backupFilePrefix  = "arttimer-"
)

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots whichever calendar file the store uses. The source
// extension (.json or .db) is preserved so a restored file keeps selecting
// the same backend.
type Manager struct {
	calendarPath string
	backupDir    string
	maxBackups   int
}

func NewManager(calendarPath string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	return &Manager{
		calendarPath: calendarPath,
		backupDir:    filepath.Join(filepath.Dir(calendarPath), backupDirName),
		maxBackups:   maxBackups,
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) suffix() string {
	ext := filepath.Ext(m.calendarPath)
	if ext == "" {
		ext = ".json"
	}
	return ext
}

// Create writes a new snapshot and rotates old ones. Returns the snapshot
// path.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.calendarPath); os.IsNotExist(err) {
		return "", fmt.Errorf("calendar does not exist: %s", m.calendarPath)
	}

	backupPath, err := m.uniquePath()
	if err != nil {
		return "", err
	}

	if err := copyFile(m.calendarPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy calendar: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// A failed rotation must not lose the snapshot that just landed.
			log.Error("backup rotation failed", err)
		}
	}

	return backupPath, nil
}

// uniquePath picks a timestamped filename, extending precision and finally a
// counter when snapshots land within the same second.
func (m *Manager) uniquePath() (string, error) {
	stamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, backupFilePrefix+stamp+m.suffix())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, backupFilePrefix+stamp+m.suffix())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	for counter := 1; counter <= 100; counter++ {
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", backupFilePrefix, stamp, counter, m.suffix()))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// List returns the snapshots on disk, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, backupFilePrefix) || !strings.HasSuffix(name, m.suffix()) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupFilePrefix), m.suffix())
		stamp = trimCounter(stamp)

		ts, err := time.Parse("20060102-1504", stamp)
		if err != nil {
			ts, err = time.Parse("20060102-150405", stamp)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// trimCounter strips a "-N" disambiguation suffix. Time components are always
// 4 or 6 digits, counters are not.
func trimCounter(stamp string) string {
	parts := strings.Split(stamp, "-")
	if len(parts) <= 2 {
		return stamp
	}
	last := parts[len(parts)-1]
	if len(last) == 4 || len(last) == 6 {
		return stamp
	}
	for _, c := range last {
		if c < '0' || c > '9' {
			return stamp
		}
	}
	return strings.Join(parts[:len(parts)-1], "-")
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the live calendar with the given snapshot. The current
// calendar is snapshotted first, then the restore lands via temp file and
// atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.calendarPath); err == nil {
		if _, err := m.create(true); err != nil {
			return fmt.Errorf("failed to snapshot current calendar before restore: %w", err)
		}
	}

	tempPath := m.calendarPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.calendarPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore calendar: %w", err)
	}
	return nil
}

// verify checks a snapshot parses under its backend's format before it is
// allowed to replace the live calendar.
func (m *Manager) verify(path string) error {
	if m.suffix() == ".db" {
		db, err := sql.Open("sqlite", path+"?mode=ro")
		if err != nil {
			return err
		}
		defer db.Close()
		var count int
		return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cal models.Calendar
	return json.Unmarshal(data, &cal)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
