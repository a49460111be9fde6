// Package dashboard renders the countdown widget for the current period.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arttimer/internal/models"
	"arttimer/internal/progress"
	"arttimer/internal/worktime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(44).
			Align(lipgloss.Center)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const barWidth = 40

type Model struct {
	program *models.Program
	tracker *progress.Tracker
	now     time.Time
	width   int
	height  int
}

func New(program *models.Program) Model {
	m := Model{
		program: program,
		now:     time.Now(),
	}
	m.retarget()
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// retarget points the tracker at whichever period now falls in. Crossing a
// period boundary while the widget runs picks up the next one.
func (m *Model) retarget() {
	period := m.program.CurrentPeriod(m.now)
	if period == nil {
		m.tracker = nil
		return
	}
	if m.tracker != nil && m.tracker.Name == period.Name {
		return
	}
	tracker, err := progress.NewTracker(period)
	if err != nil {
		m.tracker = nil
		return
	}
	m.tracker = tracker
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.now = time.Time(msg)
		m.retarget()
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var content string
	if m.tracker == nil {
		content = mutedStyle.Render("No active period right now.")
	} else {
		snap := m.tracker.Snapshot(m.now)
		content = lipgloss.JoinVertical(lipgloss.Center,
			countdownStyle.Render(snap.Display()),
			renderBar(snap),
			mutedStyle.Render(fmt.Sprintf("%.1f%% remaining", snap.RemainingPercent)),
		)
	}

	title := "ART Timer"
	if m.tracker != nil {
		title = m.tracker.Name
	}
	parts := []string{titleStyle.Render(title), content}
	if sessions := m.viewActiveSessions(); sessions != "" {
		parts = append(parts, "", sessions)
	}
	parts = append(parts, "", mutedStyle.Render(m.now.Format("Mon Jan 2 15:04:05")))
	content = lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// viewActiveSessions renders a countdown line per session whose window
// contains the current instant. Redrawn on every tick, so the seconds move.
func (m Model) viewActiveSessions() string {
	sessions := m.program.ActiveSessions(m.now)
	if len(sessions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		left := int(worktime.DurationMinutes(m.now, s.EndDate.Time) * 60)
		lines = append(lines, fmt.Sprintf("%s: %dm %02ds left", s.Name, left/60, left%60))
	}
	return mutedStyle.Render(strings.Join(lines, "\n"))
}

// renderBar draws the remaining share of the period as a filled bar. The bar
// is the progress ring unrolled: its width stands in for the circumference
// and the dash offset marks where the filled span ends.
func renderBar(snap progress.Snapshot) string {
	filled := barWidth - int(snap.DashOffset(barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}
