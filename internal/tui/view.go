package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.dashboard.View()
	case StateSessions:
		content = docStyle.Render(m.sessions.View())
	case StateReminders:
		content = docStyle.Render(m.reminders.View())
	case StateAddReminder:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Sessions", "Reminders"} {
		if m.state == ViewState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.errText != "" {
		return errorStyle.Render(m.errText)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
