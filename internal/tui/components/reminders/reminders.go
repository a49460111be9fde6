// Package reminders lists every stored alert across the calendar.
package reminders

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"arttimer/internal/models"
)

type Item struct {
	Ref   models.SessionRef
	Alert models.Alert
}

func (i Item) Title() string {
	if i.Alert.Message != "" {
		return i.Alert.Message
	}
	return "Reminder for " + i.Ref.Name
}

func (i Item) Description() string {
	state := "off"
	if i.Alert.TimerEnabled.Enabled() {
		state = "on"
	}
	return fmt.Sprintf("%s | fires %s | %s",
		i.Ref.String(),
		i.Alert.AlertTime.Format("Mon Jan 2 15:04"),
		state)
}

func (i Item) FilterValue() string { return i.Alert.Message }

type Model struct {
	list list.Model
}

func New(cal *models.Calendar, width, height int) Model {
	l := list.New(buildItems(cal), list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func buildItems(cal *models.Calendar) []list.Item {
	var items []list.Item
	cal.EachSession(func(ref models.SessionRef, s *models.Session) bool {
		for _, alert := range s.Alerts {
			items = append(items, Item{Ref: ref, Alert: alert})
		}
		return true
	})
	return items
}

func (m *Model) Refresh(cal *models.Calendar) {
	m.list.SetItems(buildItems(cal))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
