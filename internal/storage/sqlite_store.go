package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"arttimer/internal/models"
)

// SQLiteStore keeps the calendar in a SQLite database instead of a JSON
// file, selected by a .db config path. The document semantics are identical:
// the whole calendar is loaded into memory and every Persist rewrites all
// rows inside one transaction.
type SQLiteStore struct {
	path string
	db   *sql.DB
	cal  *models.Calendar
}

const schema = `
CREATE TABLE IF NOT EXISTS program (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS periods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL CHECK (kind IN ('planning', 'iteration')),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	period_id INTEGER NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	day TEXT NOT NULL,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS alerts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	timer_enabled TEXT NOT NULL,
	message TEXT NOT NULL,
	alert_time TEXT NOT NULL
);
`

func NewSQLiteStore(configPath string) *SQLiteStore {
	return &SQLiteStore{
		path: configPath,
	}
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", ErrCorruptConfig, err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("calendar already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	s.cal = StarterCalendar(nowFunc())
	return s.Persist()
}

func (s *SQLiteStore) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("calendar not initialized, run 'arttimer init' first")
	}
	if err := s.open(); err != nil {
		return err
	}

	cal := &models.Calendar{}

	row := s.db.QueryRow("SELECT start_date, end_date FROM program WHERE id = 1")
	var startStr, endStr string
	if err := row.Scan(&startStr, &endStr); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: program row missing", ErrCorruptConfig)
		}
		return fmt.Errorf("failed to read program: %w", err)
	}
	var err error
	if cal.Program.StartDate, err = parseStored(startStr); err != nil {
		return err
	}
	if cal.Program.EndDate, err = parseStored(endStr); err != nil {
		return err
	}

	if cal.Program.PlanningAndInnovation, err = s.loadPeriods("planning", true); err != nil {
		return err
	}
	if cal.Program.Iterations, err = s.loadPeriods("iteration", false); err != nil {
		return err
	}

	s.cal = cal
	return nil
}

func (s *SQLiteStore) loadPeriods(kind string, withActivities bool) ([]models.Period, error) {
	rows, err := s.db.Query(
		"SELECT id, name, start_date, end_date FROM periods WHERE kind = ? ORDER BY position", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read periods: %w", err)
	}
	defer rows.Close()

	var periods []models.Period
	var ids []int64
	for rows.Next() {
		var id int64
		var p models.Period
		var startStr, endStr string
		if err := rows.Scan(&id, &p.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		if p.StartDate, err = parseStored(startStr); err != nil {
			return nil, err
		}
		if p.EndDate, err = parseStored(endStr); err != nil {
			return nil, err
		}
		periods = append(periods, p)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read periods: %w", err)
	}

	if withActivities {
		for i, id := range ids {
			activities, err := s.loadActivities(id)
			if err != nil {
				return nil, err
			}
			periods[i].Activities = activities
		}
	}
	return periods, nil
}

func (s *SQLiteStore) loadActivities(periodID int64) ([]models.Activity, error) {
	rows, err := s.db.Query(
		"SELECT id, day, name FROM activities WHERE period_id = ? ORDER BY position", periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	var ids []int64
	for rows.Next() {
		var id int64
		var a models.Activity
		var day string
		if err := rows.Scan(&id, &day, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Day = models.DayLabel(day)
		activities = append(activities, a)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}

	for i, id := range ids {
		sessions, err := s.loadSessions(id)
		if err != nil {
			return nil, err
		}
		activities[i].Sessions = sessions
	}
	return activities, nil
}

func (s *SQLiteStore) loadSessions(activityID int64) ([]models.Session, error) {
	rows, err := s.db.Query(
		"SELECT id, name, start_date, end_date FROM sessions WHERE activity_id = ? ORDER BY position", activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	var ids []int64
	for rows.Next() {
		var id int64
		var sess models.Session
		var startStr, endStr string
		if err := rows.Scan(&id, &sess.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if sess.StartDate, err = parseStored(startStr); err != nil {
			return nil, err
		}
		if sess.EndDate, err = parseStored(endStr); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	for i, id := range ids {
		alerts, err := s.loadAlerts(id)
		if err != nil {
			return nil, err
		}
		sessions[i].Alerts = alerts
	}
	return sessions, nil
}

func (s *SQLiteStore) loadAlerts(sessionID int64) ([]models.Alert, error) {
	rows, err := s.db.Query(
		"SELECT timer_enabled, message, alert_time FROM alerts WHERE session_id = ? ORDER BY position", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var enabled, timeStr string
		if err := rows.Scan(&enabled, &a.Message, &timeStr); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.TimerEnabled = models.TimerState(enabled)
		if a.AlertTime, err = parseStored(timeStr); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}
	return alerts, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Calendar() (*models.Calendar, error) {
	if s.cal == nil {
		return nil, fmt.Errorf("calendar not loaded")
	}
	return s.cal, nil
}

func (s *SQLiteStore) AppendAlert(ref models.SessionRef, alert models.Alert) error {
	if s.cal == nil {
		return fmt.Errorf("calendar not loaded")
	}

	session, err := s.cal.FindSession(ref.Name, ref.Day)
	if err != nil {
		return err
	}

	session.Alerts = append(session.Alerts, alert)
	return s.Persist()
}

// Persist rewrites every row from the in-memory calendar inside one
// transaction, the relational equivalent of the JSON store's full-document
// rewrite.
func (s *SQLiteStore) Persist() error {
	if s.cal == nil {
		return fmt.Errorf("calendar not loaded")
	}
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"alerts", "sessions", "activities", "periods", "program"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	prog := &s.cal.Program
	if _, err := tx.Exec(
		"INSERT INTO program (id, start_date, end_date) VALUES (1, ?, ?)",
		formatStored(prog.StartDate), formatStored(prog.EndDate)); err != nil {
		return fmt.Errorf("failed to write program: %w", err)
	}

	if err := insertPeriods(tx, "planning", prog.PlanningAndInnovation); err != nil {
		return err
	}
	if err := insertPeriods(tx, "iteration", prog.Iterations); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calendar: %w", err)
	}
	return nil
}

func insertPeriods(tx *sql.Tx, kind string, periods []models.Period) error {
	for pos, p := range periods {
		res, err := tx.Exec(
			"INSERT INTO periods (kind, position, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
			kind, pos, p.Name, formatStored(p.StartDate), formatStored(p.EndDate))
		if err != nil {
			return fmt.Errorf("failed to write period %s: %w", p.Name, err)
		}
		periodID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to resolve period id: %w", err)
		}

		for apos, a := range p.Activities {
			res, err := tx.Exec(
				"INSERT INTO activities (period_id, position, day, name) VALUES (?, ?, ?, ?)",
				periodID, apos, string(a.Day), a.Name)
			if err != nil {
				return fmt.Errorf("failed to write activity %s: %w", a.Name, err)
			}
			activityID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to resolve activity id: %w", err)
			}

			for spos, sess := range a.Sessions {
				res, err := tx.Exec(
					"INSERT INTO sessions (activity_id, position, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
					activityID, spos, sess.Name, formatStored(sess.StartDate), formatStored(sess.EndDate))
				if err != nil {
					return fmt.Errorf("failed to write session %s: %w", sess.Name, err)
				}
				sessionID, err := res.LastInsertId()
				if err != nil {
					return fmt.Errorf("failed to resolve session id: %w", err)
				}

				for pos, alert := range sess.Alerts {
					if _, err := tx.Exec(
						"INSERT INTO alerts (session_id, position, timer_enabled, message, alert_time) VALUES (?, ?, ?, ?, ?)",
						sessionID, pos, string(alert.TimerEnabled), alert.Message, formatStored(alert.AlertTime)); err != nil {
						return fmt.Errorf("failed to write alert: %w", err)
					}
				}
			}
		}
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func parseStored(value string) (models.Timestamp, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return models.Timestamp{}, fmt.Errorf("%w: bad timestamp %q", ErrCorruptConfig, value)
	}
	return models.NewTimestamp(t), nil
}

func formatStored(t models.Timestamp) string {
	return t.UTC().Format(time.RFC3339)
}
