package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/compliance-tracker/internal/keys"
	"github.com/nhle/compliance-tracker/internal/session"
	"github.com/nhle/compliance-tracker/internal/store"
	"github.com/nhle/compliance-tracker/internal/ui"
	"github.com/nhle/compliance-tracker/internal/ui/checklistdetail"
	"github.com/nhle/compliance-tracker/internal/ui/checklistform"
	"github.com/nhle/compliance-tracker/internal/ui/checklistlist"
	"github.com/nhle/compliance-tracker/internal/ui/dashboard"
	helpview "github.com/nhle/compliance-tracker/internal/ui/help"
	"github.com/nhle/compliance-tracker/internal/ui/itemform"
	"github.com/nhle/compliance-tracker/internal/ui/loginform"
	"github.com/nhle/compliance-tracker/internal/ui/registerform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewLogin
	ViewRegister
	ViewDashboard
	ViewChecklists
	ViewDetail
	ViewChecklistForm
	ViewItemForm
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the session and the remote collection.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *session.Manager
	store        *store.RemoteStore
	keys         *keys.KeyMap

	loginView     loginform.Model
	registerView  registerform.Model
	dashboardView dashboard.Model
	listView      checklistlist.Model
	detailView    checklistdetail.Model
	formView      checklistform.Model
	itemFormView  itemform.Model
	helpView      helpview.Model

	ready bool
	busy  bool
}

// New creates a new root application model.
func New(sess *session.Manager, s *store.RemoteStore) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:   ViewLoading,
		session:       sess,
		store:         s,
		keys:          k,
		loginView:     loginform.New(80, 24),
		registerView:  registerform.New(80, 24),
		dashboardView: dashboard.New(s, k, 80, 24),
		listView:      checklistlist.New(s, k, 80, 24),
		detailView:    checklistdetail.New(s, k, 80, 24),
		formView:      checklistform.New(80, 24),
		itemFormView:  itemform.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
	}
}

// Init validates any persisted session before showing the first screen.
func (m Model) Init() tea.Cmd {
	return m.restoreSession()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.registerView.SetSize(contentWidth, contentHeight)
		m.dashboardView.SetSize(contentWidth, contentHeight)
		m.listView.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.itemFormView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		if msg.state == session.StateAuthenticated {
			m.currentView = ViewDashboard
			return m, m.dashboardView.Load()
		}
		m.currentView = ViewLogin
		return m, m.loginView.Start("")

	case loginform.SubmittedMsg:
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.login(msg.Email, msg.Password)

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.loginView.SetError(msg.err.Error())
			return m, nil
		}
		m.currentView = ViewDashboard
		return m, m.dashboardView.Load()

	case loginform.RegisterRequestedMsg:
		m.currentView = ViewRegister
		return m, m.registerView.Start()

	case registerform.SubmittedMsg:
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.register(msg.Registration)

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			general, fields := splitError(msg.err)
			m.registerView.SetErrors(general, fields)
			return m, nil
		}
		m.currentView = ViewDashboard
		return m, m.dashboardView.Load()

	case registerform.LoginRequestedMsg:
		m.currentView = ViewLogin
		return m, m.loginView.Start("")

	case loggedOutMsg:
		m.currentView = ViewLogin
		return m, m.loginView.Start("")

	case sessionExpiredMsg:
		m.currentView = ViewLogin
		return m, m.loginView.Start(msg.message)

	case dashboard.StatsLoadedMsg:
		if cmd, expired := m.interceptAuthError(msg.Err); expired {
			return m, cmd
		}
		return m.updateActiveView(msg)

	case checklistlist.ChecklistsLoadedMsg:
		if cmd, expired := m.interceptAuthError(msg.Err); expired {
			return m, cmd
		}
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd

	case checklistlist.SelectedMsg:
		m.currentView = ViewDetail
		return m, m.detailView.Load(msg.ID)

	case checklistlist.CreateRequestedMsg:
		m.currentView = ViewChecklistForm
		return m, m.formView.StartCreate()

	case checklistlist.EditRequestedMsg:
		m.currentView = ViewChecklistForm
		return m, m.formView.StartEdit(msg.Checklist)

	case checklistlist.DeleteConfirmedMsg:
		return m, m.deleteChecklist(msg.ID)

	case checklistlist.SetStatusMsg:
		return m, m.setChecklistStatus(msg.ID, msg.Status)

	case checklistStatusChangedMsg:
		if cmd, expired := m.interceptAuthError(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			m.listView.SetError(msg.err.Error())
			return m, nil
		}
		// The patch already re-fetched the collection.
		return m, m.listView.ShowCached()

	case checklistDeletedMsg:
		if cmd, expired := m.interceptAuthError(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			m.listView.SetError(msg.err.Error())
			return m, nil
		}
		// The deletion already pruned the cached collection.
		return m, m.listView.ShowCached()

	case checklistform.SubmittedMsg:
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.saveChecklist(msg.Draft, msg.EditID)

	case checklistSavedMsg:
		m.busy = false
		if cmd, expired := m.interceptAuthError(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			general, fields := splitError(msg.err)
			m.formView.SetErrors(general, fields)
			return m, nil
		}
		m.currentView = ViewChecklists
		return m, m.listView.Load()

	case checklistform.CancelMsg:
		m.currentView = ViewChecklists
		return m, nil

	case checklistdetail.LoadedMsg:
		if cmd, expired := m.interceptAuthError(msg.Err); expired {
			return m, cmd
		}
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case checklistdetail.BackMsg:
		m.currentView = ViewChecklists
		return m, m.listView.Load()

	case checklistdetail.AddItemRequestedMsg:
		m.currentView = ViewItemForm
		return m, m.itemFormView.StartAdd(msg.ChecklistID)

	case checklistdetail.EditItemRequestedMsg:
		m.currentView = ViewItemForm
		return m, m.itemFormView.StartEdit(msg.Item)

	case checklistdetail.DeleteItemConfirmedMsg:
		return m, m.deleteItem(msg.ItemID, msg.ChecklistID)

	case checklistdetail.CompleteItemMsg:
		return m, m.completeItem(msg.ItemID, msg.ChecklistID, msg.EvidenceNotes)

	case checklistdetail.SetItemStatusMsg:
		return m, m.setItemStatus(msg.ItemID, msg.ChecklistID, msg.Status)

	case checklistdetail.SetChecklistStatusMsg:
		return m, m.patchChecklistStatusInDetail(msg.ChecklistID, msg.Status)

	case itemform.SubmittedMsg:
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.saveItem(msg.Draft, msg.ChecklistID, msg.EditID)

	case itemSavedMsg:
		m.busy = false
		if cmd, expired := m.interceptAuthError(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			general, fields := splitError(msg.err)
			m.itemFormView.SetErrors(general, fields)
			return m, nil
		}
		m.currentView = ViewDetail
		return m, m.detailView.Load(msg.checklistID)

	case itemMutatedMsg:
		if cmd, expired := m.interceptAuthError(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			m.detailView.SetError(msg.err.Error())
			return m, nil
		}
		return m, m.detailView.Load(msg.checklistID)

	case itemform.CancelMsg:
		m.currentView = ViewDetail
		return m, m.detailView.Load(m.detailView.ChecklistID())

	case tea.KeyMsg:
		if handled, model, cmd := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes shortcuts that work across the browse
// views. Form views and text-input modes keep their keystrokes.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	if !m.inBrowseView() || m.capturingInput() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "g":
		if m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
			return true, m, m.dashboardView.Load()
		}

	case "l":
		if m.currentView != ViewChecklists {
			m.currentView = ViewChecklists
			return true, m, m.listView.Load()
		}

	case "L":
		return true, m, m.logout()
	}

	return false, m, nil
}

// inBrowseView reports whether a read-only navigation view is active.
func (m Model) inBrowseView() bool {
	switch m.currentView {
	case ViewDashboard, ViewChecklists, ViewDetail, ViewHelp:
		return true
	}
	return false
}

// capturingInput reports whether the active view owns plain keystrokes.
func (m Model) capturingInput() bool {
	switch m.currentView {
	case ViewChecklists:
		return m.listView.CapturingInput()
	case ViewDetail:
		return m.detailView.CapturingInput()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewChecklists:
		m.listView, cmd = m.listView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewChecklistForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewItemForm:
		m.itemFormView, cmd = m.itemFormView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready || m.currentView == ViewLoading {
		return "Loading..."
	}

	// Auth screens render full-screen without the app frame.
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewRegister:
		return m.registerView.View()
	}

	header := m.layout.RenderHeader("Compliance Tracker", m.overdueAlert(), m.sessionInfo())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewChecklists:
		return m.listView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewChecklistForm:
		return m.formView.View()
	case ViewItemForm:
		return m.itemFormView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// overdueAlert summarizes overdue checklists from the cached
// collection for the header's attention slot.
func (m Model) overdueAlert() string {
	overdue := 0
	for _, c := range m.store.Checklists() {
		if c.IsOverdue {
			overdue++
		}
	}
	if overdue == 0 {
		return ""
	}
	if overdue == 1 {
		return "1 overdue"
	}
	return fmt.Sprintf("%d overdue", overdue)
}

// sessionInfo returns the signed-in identity for the header.
func (m Model) sessionInfo() string {
	if u := m.session.CurrentUser(); u != nil {
		return u.DisplayName()
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help"
	case ViewDashboard:
		return "r refresh | l checklists | ? help | L logout | q quit"
	case ViewChecklists:
		return "enter open | n new | e edit | d delete | t status | / search | tab filter | g dashboard | ? help"
	case ViewDetail:
		return "a add item | c complete | t item status | T checklist status | e edit | d delete | / search | esc back"
	case ViewChecklistForm, ViewItemForm:
		return "enter submit | esc cancel"
	default:
		return ""
	}
}
