package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"arttimer/internal/tui/components/dashboard"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - v - 4
		m.dashboard.SetSize(msg.Width, contentHeight)
		m.sessions.SetSize(msg.Width-h, contentHeight)
		m.reminders.SetSize(msg.Width-h, contentHeight)

	case dashboard.TickMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case RefreshMsg:
		// The cron-driven daily recompute; the next tick re-snapshots, so
		// nothing to recalculate here beyond the list contents.
		m.refreshCalendarViews()
		return m, nil

	case ReminderAddedMsg:
		m.status = "Reminder set for " + msg.Ref.String()
		m.refreshCalendarViews()
		return m, nil

	case ReminderTriggeredMsg:
		m.status = "Reminder fired for " + msg.Ref.String()
		m.refreshCalendarViews()
		return m, nil

	case submitErrMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.state == StateAddReminder {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Remind) && m.state == StateSessions:
			return m.openReminderForm()
		}
	}

	return m.updateActiveTab(msg)
}

func (m Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateSessions:
		m.sessions, cmd = m.sessions.Update(msg)
	case StateReminders:
		m.reminders, cmd = m.reminders.Update(msg)
	}
	return m, cmd
}

func (m Model) openReminderForm() (tea.Model, tea.Cmd) {
	ref, ok := m.sessions.Selected()
	if !ok {
		m.errText = "no session selected"
		return m, nil
	}

	m.formTarget = ref
	m.reminderForm = &ReminderFormModel{Minutes: "15"}
	m.form = NewReminderForm(m.reminderForm, ref.Name)
	m.previousState = m.state
	m.state = StateAddReminder
	m.errText = ""
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m, m.submitReminderCmd()
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// submitReminderCmd stores the reminder off the update loop. The result comes
// back either as a ReminderAddedMsg through the event sink or as an error
// message here.
func (m Model) submitReminderCmd() tea.Cmd {
	fm := *m.reminderForm
	target := m.formTarget
	return func() tea.Msg {
		_, err := m.scheduler.Submit(
			m.store, target.Name, target.Day, fm.Message,
			fm.OffsetDays(), fm.OffsetHours(), fm.OffsetMinutes())
		if err != nil {
			return submitErrMsg{err: err}
		}
		return nil
	}
}

type submitErrMsg struct{ err error }
