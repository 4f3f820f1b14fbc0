package checklistform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/internal/validate"
)

func TestSubmitWithPastDueDateEmitsNoCommand(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()

	yesterday := model.Today().AddDate(0, 0, -1).Format(model.DateLayout)
	m.fb.name = "Quarterly Audit"
	m.fb.dueDate = yesterday

	cmd := m.handleSubmit()

	// No command means no request leaves the client; the failure stays
	// co-located with the field.
	require.Nil(t, cmd)
	require.Equal(t, validate.MsgDueDatePast, m.fieldErrors["due_date"])
}

func TestSubmitWithEmptyNameEmitsNoCommand(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()

	m.fb.name = "   "
	m.fb.dueDate = model.Today().String()

	cmd := m.handleSubmit()

	require.Nil(t, cmd)
	require.Equal(t, validate.MsgNameRequired, m.fieldErrors["name"])
}

func TestSubmitWithValidFieldsEmitsDraft(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()

	tomorrow := model.Today().AddDate(0, 0, 1).Format(model.DateLayout)
	m.fb.name = "Quarterly Audit"
	m.fb.dueDate = tomorrow
	m.fb.status = model.ChecklistStatusActive

	cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	require.Empty(t, m.fieldErrors)

	msg, ok := cmd().(SubmittedMsg)
	require.True(t, ok)
	require.Equal(t, "Quarterly Audit", msg.Draft.Name)
	require.Equal(t, tomorrow, msg.Draft.DueDate.String())
	require.Equal(t, model.ChecklistStatusActive, msg.Draft.Status)
	require.Zero(t, msg.EditID)
}
