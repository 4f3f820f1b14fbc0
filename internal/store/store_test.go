package store

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/model"
	"github.com/nhle/compliance-tracker/tests/testutil"
)

func TestLoadChecklistsCachesCollection(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200, `[{"id": 1, "name": "SOC 2"}, {"id": 2, "name": "ISO 27001"}]`)
	}))
	s := New(api.NewClient(srv.URL, api.Options{}))

	checklists, err := s.LoadChecklists(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, checklists, 2)
	require.Len(t, s.Checklists(), 2)
}

func TestSearchIsCaseInsensitiveOverNameAndDescription(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200, `[
			{"id": 1, "name": "SOC 2 Audit", "description": "annual"},
			{"id": 2, "name": "Vendor Review", "description": "SOC reports"},
			{"id": 3, "name": "Onboarding", "description": "new hires"}
		]`)
	}))
	s := New(api.NewClient(srv.URL, api.Options{}))
	_, err := s.LoadChecklists(context.Background(), "")
	require.NoError(t, err)

	matches := s.Search("soc")
	require.Len(t, matches, 2)

	require.Len(t, s.Search(""), 3)
	require.Empty(t, s.Search("nothing"))
}

func TestDeleteChecklistPrunesCacheWithoutRefetch(t *testing.T) {
	var listCalls, deleteCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/checklists/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		testutil.WriteJSON(w, 200, `[{"id": 1, "name": "Keep"}, {"id": 7, "name": "Drop"}]`)
	})
	mux.HandleFunc("/api/checklists/7/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		atomic.AddInt32(&deleteCalls, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	srv := testutil.NewServer(t, mux)
	s := New(api.NewClient(srv.URL, api.Options{}))

	_, err := s.LoadChecklists(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteChecklist(context.Background(), 7))

	cached := s.Checklists()
	require.Len(t, cached, 1)
	require.Equal(t, 1, cached[0].ID)
	require.EqualValues(t, 1, atomic.LoadInt32(&listCalls))
	require.EqualValues(t, 1, atomic.LoadInt32(&deleteCalls))
}

func TestCreateChecklistRefetchesWithLastFilter(t *testing.T) {
	var gotQueries []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/checklists/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			testutil.WriteJSON(w, 201, `{"id": 9, "name": "New", "status": "active"}`)
			return
		}
		gotQueries = append(gotQueries, r.URL.RawQuery)
		testutil.WriteJSON(w, 200, `[{"id": 9, "name": "New", "status": "active"}]`)
	})
	srv := testutil.NewServer(t, mux)
	s := New(api.NewClient(srv.URL, api.Options{}))

	_, err := s.LoadChecklists(context.Background(), "active")
	require.NoError(t, err)

	created, err := s.CreateChecklist(context.Background(), model.ChecklistDraft{Name: "New", Status: "active"})
	require.NoError(t, err)
	require.Equal(t, 9, created.ID)

	require.Equal(t, []string{"status=active", "status=active"}, gotQueries)
}

func TestCompleteItemSendsEvidenceNotes(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/items/4/complete/", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		testutil.WriteJSON(w, 200,
			`{"success": true, "item": {"id": 4, "status": "completed", "is_completed": true}, "message": "done"}`)
	})
	srv := testutil.NewServer(t, mux)
	s := New(api.NewClient(srv.URL, api.Options{}))

	item, err := s.CompleteItem(context.Background(), 4, "screenshot attached")
	require.NoError(t, err)
	require.Equal(t, "completed", item.Status)
	require.JSONEq(t, `{"evidence_notes": "screenshot attached"}`, gotBody)
}

func TestSearchItemsMatchesTitleDescriptionAndOwner(t *testing.T) {
	items := []model.Item{
		{ID: 1, Title: "Rotate keys", Description: "quarterly", AssignedOwner: "alice"},
		{ID: 2, Title: "Review logs", Description: "weekly alice check", AssignedOwner: "bob"},
		{ID: 3, Title: "Patch servers", Description: "monthly", AssignedOwner: "carol"},
	}

	require.Len(t, SearchItems(items, "ALICE"), 2)
	require.Len(t, SearchItems(items, ""), 3)
	require.Empty(t, SearchItems(items, "zzz"))

	byTitle := SearchItems(items, "patch")
	require.Len(t, byTitle, 1)
	require.Equal(t, 3, byTitle[0].ID)
}
