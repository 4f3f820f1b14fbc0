package model

// DashboardStats holds the aggregate counters returned by the stats
// endpoint. All values are backend-computed.
type DashboardStats struct {
	TotalChecklists     int     `json:"total_checklists"`
	ActiveChecklists    int     `json:"active_checklists"`
	DraftChecklists     int     `json:"draft_checklists"`
	CompletedChecklists int     `json:"completed_checklists"`
	TotalItems          int     `json:"total_items"`
	PendingItems        int     `json:"pending_items"`
	InProgressItems     int     `json:"in_progress_items"`
	CompletedItems      int     `json:"completed_items"`
	OverdueChecklists   int     `json:"overdue_checklists"`
	AverageCompletion   float64 `json:"average_completion"`
}
