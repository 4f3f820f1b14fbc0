package model

import "time"

// Item status constants.
const (
	ItemStatusPending       = "pending"
	ItemStatusInProgress    = "in-progress"
	ItemStatusCompleted     = "completed"
	ItemStatusNotApplicable = "not-applicable"
)

// ItemStatuses lists the valid item statuses in display order.
var ItemStatuses = []string{
	ItemStatusPending,
	ItemStatusInProgress,
	ItemStatusCompleted,
	ItemStatusNotApplicable,
}

// Item is a single trackable unit of work belonging to exactly one
// checklist. CompletedAt is owned by the backend: it is set when the
// status enters completed and cleared when it leaves, and the client
// must not assume it only moves forward.
type Item struct {
	ID            int        `json:"id"`
	ChecklistID   int        `json:"checklist"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	AssignedOwner string     `json:"assigned_owner"`
	EvidenceNotes string     `json:"evidence_notes"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// IsCompleted is backend-derived: true for completed and
	// not-applicable items alike.
	IsCompleted bool `json:"is_completed"`
}

// ItemDraft carries the writable item fields for create and update
// requests.
type ItemDraft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status,omitempty"`
	AssignedOwner string `json:"assigned_owner"`
	EvidenceNotes string `json:"evidence_notes"`
}

// ItemStatusLabel maps an item status to its display label.
func ItemStatusLabel(status string) string {
	switch status {
	case ItemStatusPending:
		return "Pending"
	case ItemStatusInProgress:
		return "In Progress"
	case ItemStatusCompleted:
		return "Completed"
	case ItemStatusNotApplicable:
		return "Not Applicable"
	}
	return status
}
