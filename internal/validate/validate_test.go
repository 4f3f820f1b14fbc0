package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/internal/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestChecklistName(t *testing.T) {
	require.NoError(t, ChecklistName("Q1 Audit"))
	require.EqualError(t, ChecklistName(""), MsgNameRequired)
	require.EqualError(t, ChecklistName("   "), MsgNameRequired)
	require.NoError(t, ChecklistName(strings.Repeat("a", 200)))
	require.EqualError(t, ChecklistName(strings.Repeat("a", 201)), MsgNameTooLong)
}

func TestChecklistNameCountsCharactersNotBytes(t *testing.T) {
	// 150 two-byte runes: well under the limit in characters even
	// though the byte length exceeds 200.
	require.NoError(t, ChecklistName(strings.Repeat("é", 150)))
	require.NoError(t, ChecklistName(strings.Repeat("é", 200)))
	require.EqualError(t, ChecklistName(strings.Repeat("é", 201)), MsgNameTooLong)

	// Surrounding whitespace does not count against the limit.
	require.NoError(t, ChecklistName("  "+strings.Repeat("a", 200)+"  "))
}

func TestChecklistDueDate(t *testing.T) {
	today := mustDate(t, "2026-03-15")

	require.EqualError(t, ChecklistDueDate("", today), MsgDueDateRequired)
	require.EqualError(t, ChecklistDueDate("2026-03-14", today), MsgDueDatePast)
	// Today itself is not in the past.
	require.NoError(t, ChecklistDueDate("2026-03-15", today))
	require.NoError(t, ChecklistDueDate("2026-03-16", today))
	require.Error(t, ChecklistDueDate("15/03/2026", today))
}

func TestItemTitle(t *testing.T) {
	require.NoError(t, ItemTitle("Rotate keys"))
	require.EqualError(t, ItemTitle(""), MsgTitleRequired)
	require.EqualError(t, ItemTitle("  "), MsgTitleRequired)
}

func TestChecklistReportsAllFailuresAtOnce(t *testing.T) {
	today := mustDate(t, "2026-03-15")

	errs := Checklist("", "2020-01-01", today)
	require.Len(t, errs, 2)
	require.Equal(t, MsgNameRequired, errs["name"])
	require.Equal(t, MsgDueDatePast, errs["due_date"])

	require.Nil(t, Checklist("Audit", "2026-04-01", today))
}

func TestRegistration(t *testing.T) {
	require.Nil(t, Registration("alice", "alice@example.com", "secret123", "secret123"))

	errs := Registration("", "", "", "")
	require.Equal(t, "Username is required", errs["username"])
	require.Equal(t, "Email is required", errs["email"])
	require.Equal(t, "Password is required", errs["password"])
	require.Equal(t, "Please confirm your password", errs["password2"])

	errs = Registration("alice", "not-an-email", "secret123", "secret123")
	require.Equal(t, "Please enter a valid email address", errs["email"])

	errs = Registration("alice", "alice@example.com", "short", "short")
	require.Equal(t, "Password must be at least 8 characters long", errs["password"])

	errs = Registration("alice", "alice@example.com", "secret123", "different")
	require.Equal(t, "Passwords do not match", errs["password2"])
}
