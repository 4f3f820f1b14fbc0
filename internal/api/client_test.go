package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/tests/testutil"
)

func TestClientAttachesTokenHeader(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		testutil.WriteJSON(w, 200, `{"ok": true}`)
	}))

	c := NewClient(srv.URL, Options{TokenFunc: func() string { return "abc123" }})

	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/api/stats/", &out))
	require.Equal(t, "Token abc123", gotAuth)
	require.NotEmpty(t, gotRequestID)
	require.True(t, out["ok"])
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		testutil.WriteJSON(w, 200, `{}`)
	}))

	c := NewClient(srv.URL, Options{TokenFunc: func() string { return "" }})

	require.NoError(t, c.Get(context.Background(), "/api/checklists/", nil))
	require.Empty(t, gotAuth)
}

func TestClientNetworkFailureUsesFixedMessage(t *testing.T) {
	// Nothing is listening on this address.
	c := NewClient("http://127.0.0.1:1", Options{})

	err := c.Get(context.Background(), "/api/checklists/", nil)
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
	require.Equal(t, NetworkErrorMessage, err.Error())
}

func TestClientUnauthorizedInvokesCallback(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 401, `{"detail": "Invalid token."}`)
	}))

	calls := 0
	c := NewClient(srv.URL, Options{OnUnauthorized: func() { calls++ }})

	err := c.Get(context.Background(), "/api/auth/me/", nil)
	require.True(t, IsAuthError(err))
	require.Equal(t, SessionExpiredMessage, err.Error())
	require.Equal(t, 1, calls)
}

func TestClientNormalizesFailedResponses(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 400, `{"name": ["Checklist name is required"]}`)
	}))

	c := NewClient(srv.URL, Options{})

	err := c.Post(context.Background(), "/api/checklists/", map[string]string{}, nil)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, KindValidation, apiErr.Kind)
	require.Equal(t, "Checklist name is required", apiErr.Fields["name"])
}

func TestClientSetsContentTypeOnlyWithBody(t *testing.T) {
	var gotContentType []string
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = append(gotContentType, r.Header.Get("Content-Type"))
		testutil.WriteJSON(w, 200, `{}`)
	}))

	c := NewClient(srv.URL, Options{})
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/api/checklists/", nil))
	require.NoError(t, c.Post(ctx, "/api/checklists/", map[string]string{"name": "x"}, nil))

	require.Equal(t, []string{"", "application/json"}, gotContentType)
}

func TestClientNoContentSkipsDecode(t *testing.T) {
	srv := testutil.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	c := NewClient(srv.URL, Options{})
	require.NoError(t, c.Delete(context.Background(), "/api/items/3/"))
}
