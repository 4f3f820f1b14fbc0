package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/keys"
	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/store"
	"github.com/nhle/compliance-tracker/internal/theme"
)

// StatsLoadedMsg carries the aggregate counters, or the fetch error.
type StatsLoadedMsg struct {
	Stats *model.DashboardStats
	Err   error
}

// Model is the dashboard view showing aggregate compliance counters.
type Model struct {
	store  *store.RemoteStore
	keys   *keys.KeyMap
	stats  *model.DashboardStats
	errMsg string
	width  int
	height int
}

// New creates a new dashboard model.
func New(s *store.RemoteStore, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Load returns a tea.Cmd that fetches the stats.
func (m Model) Load() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		stats, err := s.Stats(context.Background())
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.Stats
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.Load()
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.errMsg != "" {
		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.ErrorBannerStyle.Render(m.errMsg),
			theme.HelpStyle.Render("Press r to retry."),
		)
		return lipgloss.NewStyle().Padding(1, 2).Render(body)
	}

	if m.stats == nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(theme.ColorGray).
			Render("Loading dashboard...")
	}

	s := m.stats

	checklistRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Checklists", fmt.Sprintf("%d", s.TotalChecklists), theme.ColorBlue),
		m.card("Active", fmt.Sprintf("%d", s.ActiveChecklists), theme.ColorBlue),
		m.card("Draft", fmt.Sprintf("%d", s.DraftChecklists), theme.ColorGray),
		m.card("Completed", fmt.Sprintf("%d", s.CompletedChecklists), theme.ColorGreen),
		m.card("Overdue", fmt.Sprintf("%d", s.OverdueChecklists), theme.ColorRed),
	)

	itemRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Items", fmt.Sprintf("%d", s.TotalItems), theme.ColorBlue),
		m.card("Pending", fmt.Sprintf("%d", s.PendingItems), theme.ColorYellow),
		m.card("In Progress", fmt.Sprintf("%d", s.InProgressItems), theme.ColorBlue),
		m.card("Done", fmt.Sprintf("%d", s.CompletedItems), theme.ColorGreen),
		m.card("Avg Completion", fmt.Sprintf("%.0f%%", s.AverageCompletion), theme.ColorMagenta),
	)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Dashboard")

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, checklistRow, itemRow),
	)
}

// card renders one stat card.
func (m Model) card(label, value string, color lipgloss.AdaptiveColor) string {
	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Align(lipgloss.Center)
	labelStyle := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Align(lipgloss.Center)

	content := lipgloss.JoinVertical(lipgloss.Center,
		valueStyle.Render(value),
		labelStyle.Render(label),
	)

	return theme.BorderStyle.
		Width(16).
		Padding(0, 1).
		MarginRight(1).
		Render(content)
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
