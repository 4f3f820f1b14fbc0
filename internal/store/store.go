// Package store is the domain store for checklists and items. Entities
// live in the backend; this store executes CRUD through the API client
// and keeps the last-fetched checklist collection for the list view.
//
// Mutations follow a deliberate asymmetry inherited from the product:
// deleting a checklist removes it from the cached collection
// immediately by identifier filter, without re-validating against the
// server, while every other mutation triggers a full re-fetch before
// the view reflects the change.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/model"
)

// RemoteStore executes checklist and item operations against the
// backend. Safe for use from Bubble Tea command goroutines.
type RemoteStore struct {
	api *api.Client

	mu         sync.RWMutex
	checklists []model.Checklist
	status     string
}

// New creates a RemoteStore over the given API client.
func New(c *api.Client) *RemoteStore {
	return &RemoteStore{api: c}
}

// LoadChecklists fetches the checklist collection, optionally filtered
// by status server-side, and replaces the cached collection.
func (s *RemoteStore) LoadChecklists(ctx context.Context, status string) ([]model.Checklist, error) {
	checklists, err := s.api.ListChecklists(ctx, status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.checklists = checklists
	s.status = status
	s.mu.Unlock()

	return checklists, nil
}

// refresh re-fetches the collection with the last applied status filter.
func (s *RemoteStore) refresh(ctx context.Context) error {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()

	_, err := s.LoadChecklists(ctx, status)
	return err
}

// Checklists returns a copy of the cached collection.
func (s *RemoteStore) Checklists() []model.Checklist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Checklist, len(s.checklists))
	copy(out, s.checklists)
	return out
}

// Search filters the cached collection by a case-insensitive substring
// match over name and description. It never touches the network; the
// list view recomputes it on every keystroke.
func (s *RemoteStore) Search(query string) []model.Checklist {
	checklists := s.Checklists()
	if query == "" {
		return checklists
	}

	q := strings.ToLower(query)
	out := checklists[:0]
	for _, c := range checklists {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}

// GetChecklist fetches one checklist with its nested items.
func (s *RemoteStore) GetChecklist(ctx context.Context, id int) (*model.Checklist, error) {
	return s.api.GetChecklist(ctx, id)
}

// CreateChecklist creates a checklist, then re-fetches the collection.
func (s *RemoteStore) CreateChecklist(ctx context.Context, draft model.ChecklistDraft) (*model.Checklist, error) {
	checklist, err := s.api.CreateChecklist(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return checklist, nil
}

// UpdateChecklist replaces a checklist, then re-fetches the collection.
func (s *RemoteStore) UpdateChecklist(ctx context.Context, id int, draft model.ChecklistDraft) (*model.Checklist, error) {
	checklist, err := s.api.UpdateChecklist(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return checklist, nil
}

// PatchChecklistStatus changes only the status of a checklist, then
// re-fetches the collection. Status transitions are unconstrained.
func (s *RemoteStore) PatchChecklistStatus(ctx context.Context, id int, status string) (*model.Checklist, error) {
	checklist, err := s.api.PatchChecklist(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return checklist, nil
}

// DeleteChecklist deletes a checklist (the backend cascades its items)
// and removes it from the cached collection immediately, without a
// re-fetch.
func (s *RemoteStore) DeleteChecklist(ctx context.Context, id int) error {
	if err := s.api.DeleteChecklist(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.checklists[:0]
	for _, c := range s.checklists {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.checklists = kept
	return nil
}

// ListItems fetches the items of a checklist, ordered by the backend.
func (s *RemoteStore) ListItems(ctx context.Context, checklistID int) ([]model.Item, error) {
	return s.api.ListChecklistItems(ctx, checklistID)
}

// AddItem creates an item under a checklist. Callers re-fetch the
// parent detail to pick up the new derived metrics.
func (s *RemoteStore) AddItem(ctx context.Context, checklistID int, draft model.ItemDraft) (*model.Item, error) {
	return s.api.AddItem(ctx, checklistID, draft)
}

// UpdateItem replaces an item's writable fields.
func (s *RemoteStore) UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (*model.Item, error) {
	return s.api.UpdateItem(ctx, id, draft)
}

// PatchItemStatus changes only the status of an item. completed_at is
// backend-owned and adjusts accordingly.
func (s *RemoteStore) PatchItemStatus(ctx context.Context, id int, status string) (*model.Item, error) {
	return s.api.PatchItem(ctx, id, map[string]interface{}{"status": status})
}

// DeleteItem deletes an item; the parent checklist is unaffected except
// through its derived metrics.
func (s *RemoteStore) DeleteItem(ctx context.Context, id int) error {
	return s.api.DeleteItem(ctx, id)
}

// CompleteItem marks an item completed via the explicit completion
// action.
func (s *RemoteStore) CompleteItem(ctx context.Context, id int, evidenceNotes string) (*model.Item, error) {
	return s.api.CompleteItem(ctx, id, evidenceNotes)
}

// Stats fetches the aggregate dashboard counters.
func (s *RemoteStore) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return s.api.Stats(ctx)
}

// SearchItems filters items by a case-insensitive substring match over
// title, description, and assigned owner.
func SearchItems(items []model.Item, query string) []model.Item {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Description), q) ||
			strings.Contains(strings.ToLower(item.AssignedOwner), q) {
			out = append(out, item)
		}
	}
	return out
}
