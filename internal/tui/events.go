package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"arttimer/internal/models"
)

// ReminderAddedMsg arrives when a reminder was stored for a session.
type ReminderAddedMsg struct {
	Ref models.SessionRef
}

// ReminderTriggeredMsg arrives when a reminder fired, so the session's bell
// indicator can be refreshed.
type ReminderTriggeredMsg struct {
	Ref models.SessionRef
}

// RefreshMsg asks the widget to recompute progress, sent by the daily cron.
type RefreshMsg struct{}

// ProgramSink forwards scheduler events into a running bubbletea program.
// Safe from timer goroutines; Program.Send is concurrency-safe.
type ProgramSink struct {
	Program *tea.Program
}

func (s *ProgramSink) ReminderAdded(ref models.SessionRef) {
	s.Program.Send(ReminderAddedMsg{Ref: ref})
}

func (s *ProgramSink) ReminderTriggered(ref models.SessionRef) {
	s.Program.Send(ReminderTriggeredMsg{Ref: ref})
}
