// Package sessions lists every calendar session and marks the ones with an
// armed reminder.
package sessions

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"arttimer/internal/models"
)

type Item struct {
	Ref     models.SessionRef
	Session models.Session
}

func (i Item) Title() string {
	if i.Session.AlertSet() {
		return "🔔 " + i.Session.Name
	}
	return i.Session.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("day %s | %s - %s",
		i.Ref.Day,
		i.Session.StartDate.Format("Mon Jan 2 15:04"),
		i.Session.EndDate.Format("15:04"))
}

func (i Item) FilterValue() string { return i.Session.Name }

type Model struct {
	list list.Model
}

func New(cal *models.Calendar, width, height int) Model {
	l := list.New(buildItems(cal), list.NewDefaultDelegate(), width, height)
	l.Title = "Sessions"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func buildItems(cal *models.Calendar) []list.Item {
	var items []list.Item
	cal.EachSession(func(ref models.SessionRef, s *models.Session) bool {
		items = append(items, Item{Ref: ref, Session: *s})
		return true
	})
	return items
}

// Refresh rebuilds the items after a reminder lands, keeping the cursor
// where it was.
func (m *Model) Refresh(cal *models.Calendar) {
	index := m.list.Index()
	m.list.SetItems(buildItems(cal))
	if index < len(m.list.Items()) {
		m.list.Select(index)
	}
}

// Selected returns the ref under the cursor; ok is false for an empty list.
func (m Model) Selected() (models.SessionRef, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.SessionRef{}, false
	}
	return item.Ref, true
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
