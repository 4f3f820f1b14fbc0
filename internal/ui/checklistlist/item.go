package checklistlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/theme"
)

// ChecklistItem wraps a model.Checklist so it can be used in a
// bubbles/list.
type ChecklistItem struct {
	Checklist model.Checklist
}

// FilterValue returns the string used for fuzzy filtering.
func (i ChecklistItem) FilterValue() string { return i.Checklist.Name }

// Title returns the checklist name for the list.
func (i ChecklistItem) Title() string { return i.Checklist.Name }

// Description returns a short summary line for the list.
func (i ChecklistItem) Description() string {
	return fmt.Sprintf(
		"%s | %d items | %.0f%%",
		model.ChecklistStatusLabel(i.Checklist.Status),
		i.Checklist.TotalItems,
		i.Checklist.CompletionPercentage,
	)
}

// Delegate implements list.ItemDelegate for rendering checklist rows.
type Delegate struct{}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-item messages.
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single checklist line.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(ChecklistItem)
	if !ok {
		return
	}

	c := ci.Checklist
	isSelected := index == m.Index()

	statusBadge := theme.ChecklistStatusStyle(c.Status).
		Render(model.ChecklistStatusLabel(c.Status))

	progress := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("%d/%d · %.0f%%", c.CompletedItems, c.TotalItems, c.CompletionPercentage))

	dueStr := ""
	if !c.DueDate.IsZero() {
		dueStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" due " + c.DueDate.String())
	}

	overdueStr := ""
	if c.IsOverdue {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf("%s %s  %s%s%s", statusBadge, c.Name, progress, dueStr, overdueStr)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
