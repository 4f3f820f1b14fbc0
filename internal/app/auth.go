package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/session"
)

// sessionRestoredMsg carries the outcome of the startup token check.
type sessionRestoredMsg struct {
	state session.State
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	err error
}

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	err error
}

// loggedOutMsg is sent after an explicit logout finishes.
type loggedOutMsg struct{}

// sessionExpiredMsg routes the user back to the login screen with a
// banner after a rejected token.
type sessionExpiredMsg struct {
	message string
}

// restoreSession validates any persisted token against the backend.
func (m Model) restoreSession() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return sessionRestoredMsg{state: sess.Restore(context.Background())}
	}
}

// login exchanges credentials for a token and persists the session.
func (m Model) login(email, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		_, err := sess.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

// register creates an account; the backend logs the new user in
// immediately, so success lands on the dashboard.
func (m Model) register(reg api.Registration) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		_, err := sess.Register(context.Background(), reg)
		return registerResultMsg{err: err}
	}
}

// logout revokes the token server-side and always clears the local
// session, even if the request fails.
func (m Model) logout() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		sess.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// interceptAuthError converts a rejected-token error into a redirect to
// the login screen. The transport has already cleared the stored
// credential by the time this runs.
func (m *Model) interceptAuthError(err error) (tea.Cmd, bool) {
	if !api.IsAuthError(err) {
		return nil, false
	}
	expired := func() tea.Msg {
		return sessionExpiredMsg{message: err.Error()}
	}
	return expired, true
}

// splitError separates an API error into a general banner and
// field-level messages for form display.
func splitError(err error) (string, map[string]string) {
	if err == nil {
		return "", nil
	}
	if apiErr, ok := api.AsError(err); ok && apiErr.HasFields() {
		return apiErr.General, apiErr.Fields
	}
	return err.Error(), nil
}
