package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"arttimer/internal/models"
)

// JSONStore keeps the calendar in a single JSON document with the legacy
// PI_1 shape. Every mutation serializes and rewrites the whole file.
type JSONStore struct {
	path string
	cal  *models.Calendar
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("calendar already initialized at %s", s.path)
	}

	s.cal = StarterCalendar(nowFunc())
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("calendar not initialized, run 'arttimer init' first")
		}
		return fmt.Errorf("failed to read calendar: %w", err)
	}

	cal := &models.Calendar{}
	if err := json.Unmarshal(data, cal); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptConfig, err)
	}
	if cal.Program.StartDate.IsZero() && len(cal.Program.PlanningAndInnovation) == 0 {
		return fmt.Errorf("%w: missing PI_1 document root", ErrCorruptConfig)
	}

	s.cal = cal
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Calendar() (*models.Calendar, error) {
	if s.cal == nil {
		return nil, fmt.Errorf("calendar not loaded")
	}
	return s.cal, nil
}

func (s *JSONStore) AppendAlert(ref models.SessionRef, alert models.Alert) error {
	if s.cal == nil {
		return fmt.Errorf("calendar not loaded")
	}

	session, err := s.cal.FindSession(ref.Name, ref.Day)
	if err != nil {
		return err
	}

	session.Alerts = append(session.Alerts, alert)
	return s.save()
}

func (s *JSONStore) Persist() error {
	if s.cal == nil {
		return fmt.Errorf("calendar not loaded")
	}
	return s.save()
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.cal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize calendar: %w", err)
	}

	// Losing a reminder silently is unacceptable; write errors surface.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
