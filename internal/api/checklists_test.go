package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/tests/testutil"
)

func TestListChecklistsDecodesBareArray(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/checklists/", r.URL.Path)
		testutil.WriteJSON(w, 200, `[{"id": 1, "name": "SOC 2"}, {"id": 2, "name": "ISO 27001"}]`)
	}))
	c := NewClient(srv.URL, Options{})

	checklists, err := c.ListChecklists(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, checklists, 2)
	require.Equal(t, "SOC 2", checklists[0].Name)
}

func TestListChecklistsDecodesPaginatedEnvelope(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200, `{"count": 1, "results": [{"id": 7, "name": "PCI DSS"}]}`)
	}))
	c := NewClient(srv.URL, Options{})

	checklists, err := c.ListChecklists(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, checklists, 1)
	require.Equal(t, 7, checklists[0].ID)
}

func TestListChecklistsPassesStatusFilter(t *testing.T) {
	var gotQuery string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		testutil.WriteJSON(w, 200, `[]`)
	}))
	c := NewClient(srv.URL, Options{})

	_, err := c.ListChecklists(context.Background(), "active")
	require.NoError(t, err)
	require.Equal(t, "status=active", gotQuery)
}

func TestGetChecklistDefaultsAbsentDerivedFields(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200, `{"id": 3, "name": "HIPAA", "status": "draft"}`)
	}))
	c := NewClient(srv.URL, Options{})

	checklist, err := c.GetChecklist(context.Background(), 3)
	require.NoError(t, err)
	require.False(t, checklist.IsOverdue)
	require.Zero(t, checklist.CompletionPercentage)
	require.Zero(t, checklist.TotalItems)
}

func TestListChecklistItemsUnwrapsEnvelope(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/checklists/5/items/", r.URL.Path)
		testutil.WriteJSON(w, 200,
			`{"success": true, "count": 1, "items": [{"id": 9, "checklist": 5, "title": "Rotate keys"}]}`)
	}))
	c := NewClient(srv.URL, Options{})

	items, err := c.ListChecklistItems(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].ChecklistID)
}

func TestAddItemUnwrapsEnvelope(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/checklists/5/add-item/", r.URL.Path)
		testutil.WriteJSON(w, 201,
			`{"success": true, "item": {"id": 10, "checklist": 5, "title": "Review logs", "status": "pending"}, "message": "Item added"}`)
	}))
	c := NewClient(srv.URL, Options{})

	item, err := c.AddItem(context.Background(), 5, model.ItemDraft{Title: "Review logs"})
	require.NoError(t, err)
	require.Equal(t, 10, item.ID)
	require.Equal(t, "pending", item.Status)
}
