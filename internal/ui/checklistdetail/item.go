package checklistdetail

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/theme"
)

// ItemRow wraps a model.Item so it can be used in a bubbles/list.
type ItemRow struct {
	Item model.Item
}

// FilterValue returns the string used for fuzzy filtering.
func (r ItemRow) FilterValue() string { return r.Item.Title }

// itemDelegate renders item rows inside the detail view.
type itemDelegate struct{}

func (d itemDelegate) Height() int  { return 1 }
func (d itemDelegate) Spacing() int { return 0 }

func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(ItemRow)
	if !ok {
		return
	}

	it := row.Item
	isSelected := index == m.Index()

	statusBadge := theme.ItemStatusStyle(it.Status).
		Render(model.ItemStatusLabel(it.Status))

	ownerStr := ""
	if it.AssignedOwner != "" {
		ownerStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render("  @" + it.AssignedOwner)
	}

	line := fmt.Sprintf("%s %s%s", statusBadge, it.Title, ownerStr)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
