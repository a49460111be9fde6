// Package tui is the desktop widget: a tabbed terminal UI over the calendar
// with a live countdown, session browser, and reminder submission.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"arttimer/internal/models"
	"arttimer/internal/scheduler"
	"arttimer/internal/storage"
	"arttimer/internal/tui/components/dashboard"
	"arttimer/internal/tui/components/reminders"
	"arttimer/internal/tui/components/sessions"
)

type ViewState int

const (
	StateDashboard ViewState = iota
	StateSessions
	StateReminders
	StateAddReminder
)

const tabCount = 3

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler

	state         ViewState
	previousState ViewState
	keys          KeyMap
	help          help.Model

	dashboard dashboard.Model
	sessions  sessions.Model
	reminders reminders.Model

	form         *huh.Form
	reminderForm *ReminderFormModel
	formTarget   models.SessionRef

	status   string
	errText  string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) (Model, error) {
	cal, err := store.Calendar()
	if err != nil {
		return Model{}, err
	}

	return Model{
		store:     store,
		scheduler: sched,
		state:     StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(&cal.Program),
		sessions:  sessions.New(cal, 0, 0),
		reminders: reminders.New(cal, 0, 0),
	}, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateSessions {
		keys = append(keys, m.keys.Remind)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	if m.state == StateSessions {
		actions = []key.Binding{m.keys.Remind}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.dashboard.Init()
}

// refreshCalendarViews rebuilds the list tabs from the live calendar after a
// reminder lands or fires.
func (m *Model) refreshCalendarViews() {
	cal, err := m.store.Calendar()
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.sessions.Refresh(cal)
	m.reminders.Refresh(cal)
}
