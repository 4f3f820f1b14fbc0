package loginform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/theme"
)

// SubmittedMsg carries the entered credentials.
type SubmittedMsg struct {
	Email    string
	Password string
}

// RegisterRequestedMsg asks the app to switch to the registration form.
type RegisterRequestedMsg struct{}

type formBindings struct {
	email    string
	password string
}

// Model is the Bubble Tea model for the login screen.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	errMsg     string
	submitting bool
	width      int
	height     int
}

// New creates a new login form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh login form. A non-empty banner is shown
// above the form, e.g. after an expired session.
func (m *Model) Start(banner string) tea.Cmd {
	m.fb.email = ""
	m.fb.password = ""
	m.errMsg = banner
	m.submitting = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError surfaces a failed login attempt and re-enables the form.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.submitting = false
	if m.form != nil {
		m.form.State = huh.StateNormal
	}
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if m.submitting {
			return m, nil
		}
		if k.String() == "ctrl+r" {
			return m, func() tea.Msg { return RegisterRequestedMsg{} }
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		email := strings.TrimSpace(m.fb.email)
		password := m.fb.password
		if email == "" || password == "" {
			m.errMsg = "Email and password are required"
			m.form.State = huh.StateNormal
			return m, nil
		}
		m.submitting = true
		m.errMsg = ""
		return m, func() tea.Msg {
			return SubmittedMsg{Email: email, Password: password}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, m.Start("")
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Compliance Tracker — Sign In")}

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg))
	}
	if m.submitting {
		sections = append(sections, theme.HelpStyle.Render("Signing in..."))
	}

	sections = append(sections,
		m.form.View(),
		theme.HelpStyle.Render("ctrl+r: create an account"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
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
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(48)
}
