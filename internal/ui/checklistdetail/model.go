package checklistdetail

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

// LoadedMsg carries a checklist and its items, fetched together.
type LoadedMsg struct {
	Checklist model.Checklist
	Items     []model.Item
	Err       error
}

// BackMsg asks the app to return to the checklist list.
type BackMsg struct{}

// AddItemRequestedMsg asks the app to open the add-item form.
type AddItemRequestedMsg struct {
	ChecklistID int
}

// EditItemRequestedMsg asks the app to open the edit form for an item.
type EditItemRequestedMsg struct {
	Item model.Item
}

// DeleteItemConfirmedMsg is sent after the user confirms an item
// deletion.
type DeleteItemConfirmedMsg struct {
	ItemID      int
	ChecklistID int
}

// CompleteItemMsg asks the app to mark an item completed, optionally
// attaching evidence notes.
type CompleteItemMsg struct {
	ItemID        int
	ChecklistID   int
	EvidenceNotes string
}

// SetChecklistStatusMsg asks the app to patch the checklist's own
// status.
type SetChecklistStatusMsg struct {
	ChecklistID int
	Status      string
}

// SetItemStatusMsg asks the app to patch an item's status.
type SetItemStatusMsg struct {
	ItemID      int
	ChecklistID int
	Status      string
}

// Model is the checklist detail view: metadata panel plus item list.
type Model struct {
	list          list.Model
	store         *store.RemoteStore
	keys          *keys.KeyMap
	checklist     model.Checklist
	items         []model.Item
	searchMode    bool
	searchInput   textinput.Model
	evidenceMode  bool
	evidenceInput textinput.Model
	evidenceID    int
	confirmID     int
	confirmTitle  string
	errMsg        string
	width         int
	height        int
}

// New creates a new checklist detail model.
func New(s *store.RemoteStore, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height-8)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search items..."
	si.Prompt = "/ "
	si.Width = width - 4

	ei := textinput.New()
	ei.Placeholder = "evidence notes (optional)"
	ei.Prompt = "> "
	ei.Width = width - 4

	return Model{
		list:          l,
		store:         s,
		keys:          k,
		searchInput:   si,
		evidenceInput: ei,
		width:         width,
		height:        height,
	}
}

// Load returns a tea.Cmd that fetches the checklist and its items.
func (m Model) Load(id int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		checklist, err := s.GetChecklist(context.Background(), id)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		items, err := s.ListItems(context.Background(), id)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Checklist: *checklist, Items: items}
	}
}

// ChecklistID returns the ID of the currently shown checklist, or zero.
func (m Model) ChecklistID() int {
	return m.checklist.ID
}

// CapturingInput reports whether the view owns plain keystrokes, so the
// app must not treat them as global shortcuts.
func (m Model) CapturingInput() bool {
	return m.searchMode || m.evidenceMode || m.confirmID != 0
}

// SetError surfaces a general error message above the view.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
}

func (m *Model) setRows(items []model.Item) tea.Cmd {
	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = ItemRow{Item: it}
	}
	return m.list.SetItems(rows)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.checklist = msg.Checklist
		m.items = msg.Items
		return m, m.setRows(store.SearchItems(m.items, m.searchInput.Value()))

	case tea.KeyMsg:
		if m.evidenceMode {
			return m.handleEvidenceKeys(msg)
		}
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

// handleEvidenceKeys captures optional evidence notes before completing
// an item.
func (m Model) handleEvidenceKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := m.evidenceID
		checklistID := m.checklist.ID
		notes := m.evidenceInput.Value()
		m.evidenceMode = false
		m.evidenceID = 0
		m.evidenceInput.Reset()
		return m, func() tea.Msg {
			return CompleteItemMsg{ItemID: id, ChecklistID: checklistID, EvidenceNotes: notes}
		}
	case "esc":
		m.evidenceMode = false
		m.evidenceID = 0
		m.evidenceInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.evidenceInput, cmd = m.evidenceInput.Update(msg)
	return m, cmd
}

// handleConfirmKeys processes the item delete confirmation prompt.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		checklistID := m.checklist.ID
		m.confirmID = 0
		m.confirmTitle = ""
		return m, func() tea.Msg {
			return DeleteItemConfirmedMsg{ItemID: id, ChecklistID: checklistID}
		}
	case "n", "N", "esc":
		m.confirmID = 0
		m.confirmTitle = ""
	}
	return m, nil
}

// handleSearchKeys filters the loaded items per keystroke; no request is
// issued.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		return m, nil
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		return m, m.setRows(m.items)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, tea.Batch(cmd, m.setRows(store.SearchItems(m.items, m.searchInput.Value())))
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "T" {
		id := m.checklist.ID
		next := nextChecklistStatus(m.checklist.Status)
		return m, func() tea.Msg {
			return SetChecklistStatusMsg{ChecklistID: id, Status: next}
		}
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load(m.checklist.ID)

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.AddItem):
		id := m.checklist.ID
		return m, func() tea.Msg { return AddItemRequestedMsg{ChecklistID: id} }

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.list.SelectedItem().(ItemRow)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditItemRequestedMsg{Item: row.Item} }

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.list.SelectedItem().(ItemRow)
		if !ok {
			return m, nil
		}
		m.confirmID = row.Item.ID
		m.confirmTitle = row.Item.Title
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		row, ok := m.list.SelectedItem().(ItemRow)
		if !ok || row.Item.Status == model.ItemStatusCompleted {
			return m, nil
		}
		m.evidenceMode = true
		m.evidenceID = row.Item.ID
		m.evidenceInput.Reset()
		return m, m.evidenceInput.Focus()

	case key.Matches(msg, m.keys.SetStatus):
		row, ok := m.list.SelectedItem().(ItemRow)
		if !ok {
			return m, nil
		}
		next := nextItemStatus(row.Item.Status)
		id := row.Item.ID
		checklistID := m.checklist.ID
		return m, func() tea.Msg {
			return SetItemStatusMsg{ItemID: id, ChecklistID: checklistID, Status: next}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextChecklistStatus cycles through the checklist statuses in display
// order.
func nextChecklistStatus(status string) string {
	for i, s := range model.ChecklistStatuses {
		if s == status {
			return model.ChecklistStatuses[(i+1)%len(model.ChecklistStatuses)]
		}
	}
	return model.ChecklistStatusDraft
}

// nextItemStatus cycles through the item statuses in display order.
func nextItemStatus(status string) string {
	for i, s := range model.ItemStatuses {
		if s == status {
			return model.ItemStatuses[(i+1)%len(model.ItemStatuses)]
		}
	}
	return model.ItemStatusPending
}

// View renders the detail view.
func (m Model) View() string {
	var sections []string

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg))
	}

	sections = append(sections, m.renderMeta())

	if m.confirmID != 0 {
		prompt := fmt.Sprintf("Delete item %q? (y/n)", m.confirmTitle)
		sections = append(sections, theme.ErrorBannerStyle.Render(prompt))
	}

	if m.evidenceMode {
		sections = append(sections,
			theme.HelpStyle.Render("Evidence notes (enter to complete, esc to cancel):"),
			lipgloss.NewStyle().
				Foreground(theme.ColorWhite).
				Padding(0, 1).
				Render(m.evidenceInput.View()))
	}

	if m.searchMode {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View()))
	}

	if len(m.list.Items()) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Padding(1, 2).
			Render("No items yet. Press a to add one.")
		sections = append(sections, empty)
	} else {
		sections = append(sections, m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMeta renders the checklist metadata panel.
func (m Model) renderMeta() string {
	c := m.checklist

	statusBadge := theme.ChecklistStatusStyle(c.Status).
		Render(model.ChecklistStatusLabel(c.Status))

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(c.Name)

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", statusBadge),
	}

	if c.Description != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(c.Description))
	}

	progress := fmt.Sprintf(
		"%d/%d items completed · %.0f%%",
		c.CompletedItems, c.TotalItems, c.CompletionPercentage,
	)
	meta := progress
	if !c.DueDate.IsZero() {
		meta += " · due " + c.DueDate.String()
	}
	if c.CreatedByUsername != "" {
		meta += " · by " + c.CreatedByUsername
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorGray).Render(meta))

	if c.IsOverdue {
		lines = append(lines, theme.OverdueStyle.Render("OVERDUE"))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-8)
	m.searchInput.Width = width - 4
	m.evidenceInput.Width = width - 4
}
