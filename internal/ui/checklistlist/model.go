package checklistlist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/keys"
	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/store"
	"github.com/nhle/compliance-tracker/internal/theme"
)

// ChecklistsLoadedMsg is sent when the checklist collection has been
// fetched from the backend.
type ChecklistsLoadedMsg struct {
	Checklists []model.Checklist
	Err        error
}

// SelectedMsg is sent when the user opens a checklist's detail view.
type SelectedMsg struct {
	ID int
}

// CreateRequestedMsg asks the app to open the create form.
type CreateRequestedMsg struct{}

// EditRequestedMsg asks the app to open the edit form for a checklist.
type EditRequestedMsg struct {
	Checklist model.Checklist
}

// DeleteConfirmedMsg is sent after the user confirms a deletion.
type DeleteConfirmedMsg struct {
	ID int
}

// SetStatusMsg asks the app to move a checklist to the next status.
// Transitions are unconstrained, so cycling is always valid.
type SetStatusMsg struct {
	ID     int
	Status string
}

// statusFilters are the backend status filters cycled by Tab; the empty
// string means all.
var statusFilters = []string{
	"",
	model.ChecklistStatusDraft,
	model.ChecklistStatusActive,
	model.ChecklistStatusCompleted,
}

// Model is the checklist list view component.
type Model struct {
	list        list.Model
	store       *store.RemoteStore
	keys        *keys.KeyMap
	filterIndex int
	searchMode  bool
	searchInput textinput.Model
	confirmID   int
	confirmName string
	errMsg      string
	width       int
	height      int
}

// New creates a new checklist list model.
func New(s *store.RemoteStore, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height-2)
	l.Title = "Checklists"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search checklists..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial collection.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a tea.Cmd that fetches the collection with the current
// status filter.
func (m Model) Load() tea.Cmd {
	s := m.store
	status := statusFilters[m.filterIndex]
	return func() tea.Msg {
		checklists, err := s.LoadChecklists(context.Background(), status)
		return ChecklistsLoadedMsg{Checklists: checklists, Err: err}
	}
}

// ShowCached replaces the visible rows from the store's cached
// collection, applying the current search query. Used after an
// optimistic delete, where no re-fetch happens.
func (m *Model) ShowCached() tea.Cmd {
	return m.setRows(m.store.Search(m.searchInput.Value()))
}

// CapturingInput reports whether the view owns plain keystrokes, so the
// app must not treat them as global shortcuts.
func (m Model) CapturingInput() bool {
	return m.searchMode || m.confirmID != 0
}

// SetError surfaces a general error message above the list.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
}

func (m *Model) setRows(checklists []model.Checklist) tea.Cmd {
	items := make([]list.Item, len(checklists))
	for i, c := range checklists {
		items[i] = ChecklistItem{Checklist: c}
	}
	return m.list.SetItems(items)
}

// Update handles messages for the checklist list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChecklistsLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, m.setRows(m.store.Search(m.searchInput.Value()))

	case tea.KeyMsg:
		if m.confirmID != 0 {
			return m.handleConfirmKeys(msg)
		}
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleConfirmKeys processes the delete confirmation prompt.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		m.confirmID = 0
		m.confirmName = ""
		return m, func() tea.Msg { return DeleteConfirmedMsg{ID: id} }
	case "n", "N", "esc":
		m.confirmID = 0
		m.confirmName = ""
	}
	return m, nil
}

// handleSearchKeys processes key input while in search mode. The query
// filters the cached collection on every keystroke; no request is
// issued.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		return m, nil
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		return m, m.setRows(m.store.Search(""))
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, tea.Batch(cmd, m.setRows(m.store.Search(m.searchInput.Value())))
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(ChecklistItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedMsg{ID: item.Checklist.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
		return m, m.Load()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return CreateRequestedMsg{} }

	case key.Matches(msg, m.keys.Edit):
		item, ok := m.list.SelectedItem().(ChecklistItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditRequestedMsg{Checklist: item.Checklist}
		}

	case key.Matches(msg, m.keys.SetStatus):
		item, ok := m.list.SelectedItem().(ChecklistItem)
		if !ok {
			return m, nil
		}
		id := item.Checklist.ID
		next := nextChecklistStatus(item.Checklist.Status)
		return m, func() tea.Msg {
			return SetStatusMsg{ID: id, Status: next}
		}

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(ChecklistItem)
		if !ok {
			return m, nil
		}
		m.confirmID = item.Checklist.ID
		m.confirmName = item.Checklist.Name
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextChecklistStatus cycles through the statuses in display order.
func nextChecklistStatus(status string) string {
	for i, s := range model.ChecklistStatuses {
		if s == status {
			return model.ChecklistStatuses[(i+1)%len(model.ChecklistStatuses)]
		}
	}
	return model.ChecklistStatusDraft
}

// View renders the checklist list view.
func (m Model) View() string {
	var sections []string

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg))
	}

	if m.confirmID != 0 {
		prompt := fmt.Sprintf(
			"Delete %q? All its items will also be deleted. (y/n)",
			m.confirmName,
		)
		sections = append(sections, theme.ErrorBannerStyle.Render(prompt))
	}

	filterLabel := "all"
	if statusFilters[m.filterIndex] != "" {
		filterLabel = statusFilters[m.filterIndex]
	}
	sections = append(sections, theme.HelpStyle.Render("filter: "+filterLabel))

	if m.searchMode {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View()))
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderEmptyState shows guidance text when no checklists match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 4).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.searchInput.Value() != "" || statusFilters[m.filterIndex] != "" {
		return style.Render("No matching checklists.\nTry adjusting the filter or search.")
	}
	return style.Render("No checklists yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
