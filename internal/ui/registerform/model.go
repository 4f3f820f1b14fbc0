package registerform

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/theme"
	"github.com/nhle/compliance-tracker/internal/validate"
)

// SubmittedMsg carries the registration payload after local validation.
type SubmittedMsg struct {
	Registration api.Registration
}

// LoginRequestedMsg asks the app to switch back to the login form.
type LoginRequestedMsg struct{}

type formBindings struct {
	username  string
	email     string
	firstName string
	lastName  string
	password  string
	password2 string
}

// Model is the Bubble Tea model for the registration screen.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	fieldErrors map[string]string
	generalErr  string
	submitting  bool
	width       int
	height      int
}

// New creates a new registration form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh registration form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.fieldErrors = nil
	m.generalErr = ""
	m.submitting = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetErrors surfaces backend errors after a rejected submission and
// re-enables the form.
func (m *Model) SetErrors(general string, fields map[string]string) {
	m.generalErr = general
	m.fieldErrors = fields
	m.submitting = false
	if m.form != nil {
		m.form.State = huh.StateNormal
	}
}

// Update handles messages for the registration form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if m.submitting {
			return m, nil
		}
		if k.String() == "ctrl+l" {
			return m, func() tea.Msg { return LoginRequestedMsg{} }
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return LoginRequestedMsg{} }
	}

	return m, cmd
}

// handleSubmit runs all registration rules and reports every failure at
// once; no request is issued when validation fails.
func (m *Model) handleSubmit() tea.Cmd {
	errs := validate.Registration(m.fb.username, m.fb.email, m.fb.password, m.fb.password2)
	if len(errs) > 0 {
		m.fieldErrors = errs
		m.form.State = huh.StateNormal
		return nil
	}
	m.fieldErrors = nil
	m.generalErr = ""
	m.submitting = true

	reg := api.Registration{
		Username:  strings.TrimSpace(m.fb.username),
		Email:     strings.TrimSpace(m.fb.email),
		Password:  m.fb.password,
		Password2: m.fb.password2,
		FirstName: strings.TrimSpace(m.fb.firstName),
		LastName:  strings.TrimSpace(m.fb.lastName),
	}
	return func() tea.Msg { return SubmittedMsg{Registration: reg} }
}

// View renders the registration form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Compliance Tracker — Create Account")}

	if m.generalErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.generalErr))
	}
	sections = append(sections, renderFieldErrors(m.fieldErrors)...)
	if m.submitting {
		sections = append(sections, theme.HelpStyle.Render("Creating account..."))
	}

	sections = append(sections,
		m.form.View(),
		theme.HelpStyle.Render("ctrl+l: back to sign in"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
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
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.fb.username),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("First Name").
				Value(&m.fb.firstName),
			huh.NewInput().
				Title("Last Name").
				Value(&m.fb.lastName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password2),
		),
	).WithWidth(48)
}
