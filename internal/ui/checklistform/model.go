package checklistform

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
// zero for create submissions.
type SubmittedMsg struct {
	Draft  model.ChecklistDraft
	EditID int
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	dueDate     string
	status      string
}

// Model is the Bubble Tea model for the checklist create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      int
	fieldErrors map[string]string
	generalErr  string
	width       int
	height      int
}

// New creates a new checklist form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{status: model.ChecklistStatusDraft},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new checklist.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.name = ""
	m.fb.description = ""
	m.fb.dueDate = ""
	m.fb.status = model.ChecklistStatusDraft
	m.fieldErrors = nil
	m.generalErr = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing checklist.
// Create and edit share the same field set and the same validation
// rules.
func (m *Model) StartEdit(c model.Checklist) tea.Cmd {
	m.editMode = true
	m.editID = c.ID
	m.fb.name = c.Name
	m.fb.description = c.Description
	m.fb.dueDate = c.DueDate.String()
	m.fb.status = c.Status
	m.fieldErrors = nil
	m.generalErr = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetErrors surfaces backend errors after a rejected submission:
// field-level messages co-located with inputs, or a general banner.
func (m *Model) SetErrors(general string, fields map[string]string) {
	m.generalErr = general
	m.fieldErrors = fields
	if m.form != nil {
		m.form.State = huh.StateNormal
	}
}

// Update handles messages for the checklist form.
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

// handleSubmit runs the shared validation rules and either surfaces the
// field errors or emits the draft. No request is issued when validation
// fails.
func (m *Model) handleSubmit() tea.Cmd {
	if errs := validate.Checklist(m.fb.name, m.fb.dueDate, model.Today()); len(errs) > 0 {
		m.fieldErrors = errs
		m.form.State = huh.StateNormal
		return nil
	}
	m.fieldErrors = nil
	m.generalErr = ""

	dueDate, _ := model.ParseDate(strings.TrimSpace(m.fb.dueDate))
	draft := model.ChecklistDraft{
		Name:        strings.TrimSpace(m.fb.name),
		Description: m.fb.description,
		DueDate:     dueDate,
		Status:      m.fb.status,
	}

	editID := 0
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg { return SubmittedMsg{Draft: draft, EditID: editID} }
}

// View renders the checklist form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Checklist"
	if m.editMode {
		titleText = "Edit Checklist"
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

// renderFieldErrors renders field-level messages in a stable order.
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
	statusOpts := make([]huh.Option[string], len(model.ChecklistStatuses))
	for i, s := range model.ChecklistStatuses {
		statusOpts[i] = huh.NewOption(model.ChecklistStatusLabel(s), s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Q1 2026 Compliance Review").
				Value(&m.fb.name).
				Validate(validate.ChecklistName),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.dueDate).
				Validate(func(s string) error {
					return validate.ChecklistDueDate(s, model.Today())
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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
