package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/compliance-tracker/internal/model"
)

// checklistSavedMsg carries the outcome of a create or update.
type checklistSavedMsg struct {
	err error
}

// checklistDeletedMsg carries the outcome of a deletion.
type checklistDeletedMsg struct {
	err error
}

// checklistStatusChangedMsg carries the outcome of a status patch.
type checklistStatusChangedMsg struct {
	err error
}

// saveChecklist creates a checklist, or replaces one when editID is
// non-zero.
func (m Model) saveChecklist(draft model.ChecklistDraft, editID int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var err error
		if editID == 0 {
			_, err = s.CreateChecklist(context.Background(), draft)
		} else {
			_, err = s.UpdateChecklist(context.Background(), editID, draft)
		}
		return checklistSavedMsg{err: err}
	}
}

// setChecklistStatus patches only the status of a checklist.
func (m Model) setChecklistStatus(id int, status string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.PatchChecklistStatus(context.Background(), id, status)
		return checklistStatusChangedMsg{err: err}
	}
}

// patchChecklistStatusInDetail patches a checklist's status from the
// detail view; the outcome reloads the detail like any other mutation
// there.
func (m Model) patchChecklistStatusInDetail(id int, status string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.PatchChecklistStatus(context.Background(), id, status)
		return itemMutatedMsg{checklistID: id, err: err}
	}
}

// deleteChecklist removes a checklist and everything under it.
func (m Model) deleteChecklist(id int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return checklistDeletedMsg{err: s.DeleteChecklist(context.Background(), id)}
	}
}
