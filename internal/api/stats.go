package api

import (
	"context"

	"github.com/nhle/compliance-tracker/internal/model"
)

// statsEnvelope wraps the dashboard stats response.
type statsEnvelope struct {
	Success bool                 `json:"success"`
	Stats   model.DashboardStats `json:"stats"`
}

// Stats fetches the aggregate dashboard counters.
func (c *Client) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var env statsEnvelope
	if err := c.Get(ctx, "/api/stats/", &env); err != nil {
		return nil, err
	}
	return &env.Stats, nil
}
