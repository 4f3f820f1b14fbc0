package api

import (
	"context"
	"fmt"

	"github.com/nhle/compliance-tracker/internal/model"
)

// GetItem fetches a single item.
func (c *Client) GetItem(ctx context.Context, id int) (*model.Item, error) {
	var item model.Item
	if err := c.Get(ctx, fmt.Sprintf("/api/items/%d/", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem fully replaces an item's writable fields.
func (c *Client) UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (*model.Item, error) {
	var item model.Item
	if err := c.Put(ctx, fmt.Sprintf("/api/items/%d/", id), draft, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// PatchItem partially updates an item, e.g. status only. The backend
// sets completed_at when the status enters completed and clears it when
// the status leaves.
func (c *Client) PatchItem(ctx context.Context, id int, fields map[string]interface{}) (*model.Item, error) {
	var item model.Item
	if err := c.Patch(ctx, fmt.Sprintf("/api/items/%d/", id), fields, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item. The parent checklist is unaffected except
// through its derived metrics.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.Delete(ctx, fmt.Sprintf("/api/items/%d/", id))
}

// CompleteItem marks an item completed via the explicit completion
// action, optionally attaching evidence notes.
func (c *Client) CompleteItem(ctx context.Context, id int, evidenceNotes string) (*model.Item, error) {
	body := map[string]string{}
	if evidenceNotes != "" {
		body["evidence_notes"] = evidenceNotes
	}

	var env itemEnvelope
	if err := c.Post(ctx, fmt.Sprintf("/api/items/%d/complete/", id), body, &env); err != nil {
		return nil, err
	}
	return &env.Item, nil
}
