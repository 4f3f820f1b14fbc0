package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/compliance-tracker/internal/model"
)

// itemSavedMsg carries the outcome of an item create or update;
// checklistID identifies the detail view to reload.
type itemSavedMsg struct {
	checklistID int
	err         error
}

// itemMutatedMsg carries the outcome of a status change, completion, or
// deletion.
type itemMutatedMsg struct {
	checklistID int
	err         error
}

// saveItem adds an item to a checklist, or replaces one when editID is
// non-zero.
func (m Model) saveItem(draft model.ItemDraft, checklistID, editID int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var err error
		if editID == 0 {
			_, err = s.AddItem(context.Background(), checklistID, draft)
		} else {
			_, err = s.UpdateItem(context.Background(), editID, draft)
		}
		return itemSavedMsg{checklistID: checklistID, err: err}
	}
}

// deleteItem removes an item from its checklist.
func (m Model) deleteItem(itemID, checklistID int) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return itemMutatedMsg{
			checklistID: checklistID,
			err:         s.DeleteItem(context.Background(), itemID),
		}
	}
}

// completeItem marks an item completed through the explicit completion
// action, optionally attaching evidence notes.
func (m Model) completeItem(itemID, checklistID int, evidenceNotes string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.CompleteItem(context.Background(), itemID, evidenceNotes)
		return itemMutatedMsg{checklistID: checklistID, err: err}
	}
}

// setItemStatus patches only the status of an item. completed_at is
// backend-owned and follows the status.
func (m Model) setItemStatus(itemID, checklistID int, status string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.PatchItemStatus(context.Background(), itemID, status)
		return itemMutatedMsg{checklistID: checklistID, err: err}
	}
}
