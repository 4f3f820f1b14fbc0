package model

import "time"

// Checklist status constants. Transitions between them are
// unconstrained; any status may be set to any other.
const (
	ChecklistStatusDraft     = "draft"
	ChecklistStatusActive    = "active"
	ChecklistStatusCompleted = "completed"
)

// ChecklistStatuses lists the valid checklist statuses in display order.
var ChecklistStatuses = []string{
	ChecklistStatusDraft,
	ChecklistStatusActive,
	ChecklistStatusCompleted,
}

// Checklist is a named, owned collection of items with an overall due
// date and status. The derived fields (IsOverdue, CompletionPercentage
// and the item counters) are computed by the backend and must be
// treated as read-only; when a list payload omits them they decode to
// zero, which doubles as the defensive display default.
type Checklist struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     Date   `json:"due_date"`
	Status      string `json:"status"`

	CreatedBy         int    `json:"created_by,omitempty"`
	CreatedByUsername string `json:"created_by_username,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Items is populated on detail fetches only.
	Items []Item `json:"items,omitempty"`

	// Backend-derived, read-only.
	IsOverdue            bool    `json:"is_overdue"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TotalItems           int     `json:"total_items"`
	CompletedItems       int     `json:"completed_items"`
	PendingItems         int     `json:"pending_items"`
}

// ChecklistDraft carries the writable checklist fields for create and
// update requests.
type ChecklistDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     Date   `json:"due_date"`
	Status      string `json:"status"`
}

// ChecklistStatusLabel maps a checklist status to its display label.
func ChecklistStatusLabel(status string) string {
	switch status {
	case ChecklistStatusDraft:
		return "Draft"
	case ChecklistStatusActive:
		return "Active"
	case ChecklistStatusCompleted:
		return "Completed"
	}
	return status
}
