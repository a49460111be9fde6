// Package config holds the widget's YAML settings file, separate from the
// calendar document it points at.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// CalendarPath locates the calendar document. The extension picks the
	// storage backend: .json for the document store, .db for SQLite.
	CalendarPath string `yaml:"calendar_path"`

	// IconPath is handed to the platform notifier; empty means no icon.
	IconPath string `yaml:"icon_path"`

	// RefreshCron schedules the daily progress recompute while the widget
	// runs. Standard five-field cron syntax.
	RefreshCron string `yaml:"refresh"`

	// Notifications toggles desktop notifications. Reminders are still
	// stored and logged when off.
	Notifications bool `yaml:"notifications"`

	// MaxBackups bounds the calendar backup rotation.
	MaxBackups int `yaml:"max_backups"`
}

func DefaultConfig() *Config {
	return &Config{
		CalendarPath:  defaultCalendarPath(),
		RefreshCron:   "0 0 * * *",
		Notifications: true,
		MaxBackups:    5,
	}
}

// Normalize fills missing values so partially written configs from older
// versions keep working.
func (c *Config) Normalize() {
	if c.CalendarPath == "" {
		c.CalendarPath = defaultCalendarPath()
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "0 0 * * *"
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 5
	}
}

// DefaultPath is the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "arttimer", "config.yaml")
}

func defaultCalendarPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "arttimer", "calendar.json")
}

// Load reads the YAML settings at path. On first run the file does not exist
// yet; a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename, 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".arttimer-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
