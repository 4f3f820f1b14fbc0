package itemform

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/theme"
	"github.com/nhle/compliance-tracker/internal/validate"
)

// SubmittedMsg is dispatched when the form passes validation. EditID is
// zero for add submissions; ChecklistID identifies the parent checklist.
type SubmittedMsg struct {
	Draft       model.ItemDraft
	ChecklistID int
	EditID      int
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title         string
	description   string
	assignedOwner string
	status        string
	evidenceNotes string
}

// Model is the Bubble Tea model for the item add/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      int
	checklistID int
	fieldErrors map[string]string
	generalErr  string
	width       int
	height      int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{status: model.ItemStatusPending},
		width:  width,
		height: height,
	}
}

// StartAdd initializes the form for adding an item to a checklist.
// The add form only collects title, description and owner; new items
// always start pending.
func (m *Model) StartAdd(checklistID int) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.checklistID = checklistID
	m.fb.title = ""
	m.fb.description = ""
	m.fb.assignedOwner = ""
	m.fb.status = model.ItemStatusPending
	m.fb.evidenceNotes = ""
	m.fieldErrors = nil
	m.generalErr = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing item. The edit
// form additionally exposes status and evidence notes.
func (m *Model) StartEdit(it model.Item) tea.Cmd {
	m.editMode = true
	m.editID = it.ID
	m.checklistID = it.ChecklistID
	m.fb.title = it.Title
	m.fb.description = it.Description
	m.fb.assignedOwner = it.AssignedOwner
	m.fb.status = it.Status
	m.fb.evidenceNotes = it.EvidenceNotes
	m.fieldErrors = nil
	m.generalErr = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetErrors surfaces backend errors after a rejected submission.
func (m *Model) SetErrors(general string, fields map[string]string) {
	m.generalErr = general
	m.fieldErrors = fields
	if m.form != nil {
		m.form.State = huh.StateNormal
	}
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit validates the title locally before emitting the draft.
func (m *Model) handleSubmit() tea.Cmd {
	if errs := validate.Item(m.fb.title); len(errs) > 0 {
		m.fieldErrors = errs
		m.form.State = huh.StateNormal
		return nil
	}
	m.fieldErrors = nil
	m.generalErr = ""

	draft := model.ItemDraft{
		Title:         strings.TrimSpace(m.fb.title),
		Description:   m.fb.description,
		AssignedOwner: m.fb.assignedOwner,
		Status:        m.fb.status,
		EvidenceNotes: m.fb.evidenceNotes,
	}

	checklistID := m.checklistID
	editID := 0
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg {
		return SubmittedMsg{Draft: draft, ChecklistID: checklistID, EditID: editID}
	}
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Add Item"
	if m.editMode {
		titleText = "Edit Item"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render(titleText)}

	if m.generalErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.generalErr))
	}
	sections = append(sections, renderFieldErrors(m.fieldErrors)...)
	sections = append(sections, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderFieldErrors(fieldErrors map[string]string) []string {
	if len(fieldErrors) == 0 {
		return nil
	}
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, theme.ErrorBannerStyle.Render(field+": "+fieldErrors[field]))
	}
	return out
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Review access control policy").
			Value(&m.fb.title).
			Validate(validate.ItemTitle),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Assigned Owner").
			Placeholder("Optional owner name").
			Value(&m.fb.assignedOwner),
	}

	if m.editMode {
		statusOpts := make([]huh.Option[string], len(model.ItemStatuses))
		for i, s := range model.ItemStatuses {
			statusOpts[i] = huh.NewOption(model.ItemStatusLabel(s), s)
		}
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewText().
				Title("Evidence Notes").
				Placeholder("How was this verified?").
				Value(&m.fb.evidenceNotes),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
