package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderHeaderIncludesAlertWhenPresent(t *testing.T) {
	l := NewLayout(80, 24)

	header := l.RenderHeader("Compliance Tracker", "3 overdue", "Alice Nguyen")
	require.Contains(t, header, "Compliance Tracker")
	require.Contains(t, header, "3 overdue")
	require.Contains(t, header, "Alice Nguyen")
}

func TestRenderHeaderOmitsEmptyAlert(t *testing.T) {
	l := NewLayout(80, 24)

	header := l.RenderHeader("Compliance Tracker", "", "Alice Nguyen")
	require.NotContains(t, header, "overdue")
	require.Contains(t, header, "Alice Nguyen")
}

func TestContentHeightAccountsForChrome(t *testing.T) {
	l := NewLayout(80, 24)
	require.Equal(t, 22, l.ContentHeight())
	require.Equal(t, 80, l.ContentWidth())
}

func TestRenderWithFrameStacksSections(t *testing.T) {
	l := NewLayout(20, 10)

	out := l.RenderWithFrame("top", "middle", "bottom")
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	require.Contains(t, lines[0], "top")
	require.Contains(t, out, "middle")
	require.Contains(t, lines[len(lines)-1], "bottom")
}
