package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arttimer/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	old := nowFunc
	nowFunc = fixedNow
	t.Cleanup(func() { nowFunc = old })

	store := NewJSONStore(filepath.Join(t.TempDir(), "calendar.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store
}

func TestJSONInitAndLoad(t *testing.T) {
	store := newTestJSONStore(t)

	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cal, err := reloaded.Calendar()
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}

	// Next Monday after Sat Mar 1 2025 is Mar 3.
	wantStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !cal.Program.StartDate.Equal(wantStart) {
		t.Errorf("program start = %v, want %v", cal.Program.StartDate, wantStart)
	}
	if len(cal.Program.PlanningAndInnovation) != 2 {
		t.Fatalf("planning periods = %d, want 2", len(cal.Program.PlanningAndInnovation))
	}
	if len(cal.Program.Iterations) != 2 {
		t.Fatalf("iterations = %d, want 2", len(cal.Program.Iterations))
	}
	if got := len(cal.Program.PlanningAndInnovation[0].Activities); got != 5 {
		t.Errorf("planning week activities = %d, want 5", got)
	}
}

func TestJSONInitRefusesExisting(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Fatal("second Init should fail on existing calendar")
	}
}

func TestJSONLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "calendar.json"))
	if err := store.Load(); err == nil {
		t.Fatal("Load should fail when no calendar exists")
	}
}

func TestJSONLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); !errors.Is(err, ErrCorruptConfig) {
		t.Fatalf("expected ErrCorruptConfig, got %v", err)
	}
}

func TestJSONLoadMissingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	if err := os.WriteFile(path, []byte(`{"something_else": {}}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); !errors.Is(err, ErrCorruptConfig) {
		t.Fatalf("expected ErrCorruptConfig for missing root, got %v", err)
	}
}

func TestJSONAppendAlertRoundTrip(t *testing.T) {
	store := newTestJSONStore(t)
	cal, _ := store.Calendar()

	ref := models.SessionRef{Day: "1", Name: "Morning Session"}
	alert := models.Alert{
		TimerEnabled: models.TimerEnabled,
		Message:      "stand up",
		AlertTime:    models.NewTimestamp(time.Date(2025, 3, 3, 8, 45, 0, 0, time.UTC)),
	}
	if err := store.AppendAlert(ref, alert); err != nil {
		t.Fatalf("AppendAlert: %v", err)
	}

	session, err := cal.FindSession("Morning Session", "1")
	if err != nil {
		t.Fatalf("FindSession: %v", err)
	}
	if len(session.Alerts) != 1 {
		t.Fatalf("alerts in memory = %d, want 1", len(session.Alerts))
	}

	// The alert must survive a cold reload.
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cal2, _ := reloaded.Calendar()
	session2, err := cal2.FindSession("morning session", "1")
	if err != nil {
		t.Fatalf("FindSession after reload: %v", err)
	}
	if len(session2.Alerts) != 1 {
		t.Fatalf("alerts after reload = %d, want 1", len(session2.Alerts))
	}
	got := session2.Alerts[0]
	if got.Message != "stand up" {
		t.Errorf("message = %q", got.Message)
	}
	if !got.TimerEnabled.Enabled() {
		t.Error("alert should be enabled")
	}
	if !got.AlertTime.Equal(alert.AlertTime.Time) {
		t.Errorf("alert time = %v, want %v", got.AlertTime, alert.AlertTime)
	}
}

func TestJSONAppendAlertUnknownSessionLeavesFileUntouched(t *testing.T) {
	store := newTestJSONStore(t)

	before, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}

	ref := models.SessionRef{Day: "1", Name: "No Such Session"}
	err = store.AppendAlert(ref, models.Alert{Message: "x"})
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	after, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("store file changed after a failed append")
	}
}
