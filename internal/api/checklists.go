package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nhle/compliance-tracker/internal/model"
)

// checklistPage tolerates the paginated list envelope; the backend may
// answer with either a bare array or {results: [...]}.
type checklistPage struct {
	Results []model.Checklist `json:"results"`
}

// itemsEnvelope wraps the nested-items endpoint response.
type itemsEnvelope struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Items   []model.Item `json:"items"`
}

// itemEnvelope wraps single-item action responses (add-item, complete).
type itemEnvelope struct {
	Success bool       `json:"success"`
	Item    model.Item `json:"item"`
	Message string     `json:"message"`
}

// ListChecklists fetches the caller's checklists, optionally filtered
// by status server-side.
func (c *Client) ListChecklists(ctx context.Context, status string) ([]model.Checklist, error) {
	path := "/api/checklists/"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var raw json.RawMessage
	if err := c.Get(ctx, path, &raw); err != nil {
		return nil, err
	}

	var checklists []model.Checklist
	if err := json.Unmarshal(raw, &checklists); err == nil {
		return checklists, nil
	}

	var page checklistPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("unmarshaling checklist list: %w", err)
	}
	return page.Results, nil
}

// GetChecklist fetches one checklist with its nested items.
func (c *Client) GetChecklist(ctx context.Context, id int) (*model.Checklist, error) {
	var checklist model.Checklist
	if err := c.Get(ctx, fmt.Sprintf("/api/checklists/%d/", id), &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// CreateChecklist creates a checklist and returns the stored entity.
func (c *Client) CreateChecklist(ctx context.Context, draft model.ChecklistDraft) (*model.Checklist, error) {
	var checklist model.Checklist
	if err := c.Post(ctx, "/api/checklists/", draft, &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// UpdateChecklist fully replaces a checklist.
func (c *Client) UpdateChecklist(ctx context.Context, id int, draft model.ChecklistDraft) (*model.Checklist, error) {
	var checklist model.Checklist
	if err := c.Put(ctx, fmt.Sprintf("/api/checklists/%d/", id), draft, &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// PatchChecklist partially updates a checklist, e.g. status only.
func (c *Client) PatchChecklist(ctx context.Context, id int, fields map[string]interface{}) (*model.Checklist, error) {
	var checklist model.Checklist
	if err := c.Patch(ctx, fmt.Sprintf("/api/checklists/%d/", id), fields, &checklist); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// DeleteChecklist deletes a checklist; the backend cascades deletion of
// its items.
func (c *Client) DeleteChecklist(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/api/checklists/%d/", id))
}

// ListChecklistItems fetches the items of one checklist.
func (c *Client) ListChecklistItems(ctx context.Context, checklistID int) ([]model.Item, error) {
	var env itemsEnvelope
	if err := c.Get(ctx, fmt.Sprintf("/api/checklists/%d/items/", checklistID), &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// AddItem creates an item under an existing checklist.
func (c *Client) AddItem(ctx context.Context, checklistID int, draft model.ItemDraft) (*model.Item, error) {
	var env itemEnvelope
	if err := c.Post(ctx, fmt.Sprintf("/api/checklists/%d/add-item/", checklistID), draft, &env); err != nil {
		return nil, err
	}
	return &env.Item, nil
}
