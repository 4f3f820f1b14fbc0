package api

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/tests/testutil"
)

func TestGetItemDecodesEntity(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/items/9/", r.URL.Path)
		testutil.WriteJSON(w, 200,
			`{"id": 9, "checklist": 5, "title": "Rotate keys", "status": "in-progress"}`)
	}))
	c := NewClient(srv.URL, Options{})

	item, err := c.GetItem(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, 5, item.ChecklistID)
	require.Equal(t, "in-progress", item.Status)
}

func TestPatchItemSendsOnlyGivenFields(t *testing.T) {
	var gotBody string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		testutil.WriteJSON(w, 200, `{"id": 9, "status": "not-applicable"}`)
	}))
	c := NewClient(srv.URL, Options{})

	item, err := c.PatchItem(context.Background(), 9, map[string]interface{}{"status": "not-applicable"})
	require.NoError(t, err)
	require.Equal(t, "not-applicable", item.Status)
	require.JSONEq(t, `{"status": "not-applicable"}`, gotBody)
}

func TestCompleteItemOmitsEmptyEvidence(t *testing.T) {
	var gotBody string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		testutil.WriteJSON(w, 200,
			`{"success": true, "item": {"id": 9, "status": "completed"}, "message": "done"}`)
	}))
	c := NewClient(srv.URL, Options{})

	_, err := c.CompleteItem(context.Background(), 9, "")
	require.NoError(t, err)
	require.JSONEq(t, `{}`, gotBody)
}
