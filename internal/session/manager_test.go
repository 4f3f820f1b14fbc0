package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/credential"
	"github.com/nhle/compliance-tracker/tests/testutil"
)

const userJSON = `{"id": 1, "username": "alice", "email": "alice@example.com", "first_name": "Alice", "last_name": "Nguyen"}`

func newManager(t *testing.T, creds credential.Store, handler http.Handler) *Manager {
	t.Helper()
	srv := testutil.NewServer(t, handler)
	return NewManager(creds, srv.URL, 5*time.Second)
}

func TestLoginPersistsCredentialAndAuthenticates(t *testing.T) {
	creds := testutil.NewFakeCreds()
	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		testutil.WriteJSON(w, 200,
			`{"success": true, "user": `+userJSON+`, "token": "tok-1", "message": "Login successful"}`)
	}))

	user, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, StateAuthenticated, m.State())
	require.True(t, creds.Has(credential.KeyToken))
	require.True(t, creds.Has(credential.KeyUser))
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	creds := testutil.NewFakeCreds()
	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 400, `{"non_field_errors": ["Invalid credentials"]}`)
	}))

	_, err := m.Login(context.Background(), "alice@example.com", "wrong")
	require.EqualError(t, err, "Invalid credentials")
	require.Equal(t, StateLoading, m.State())
	require.False(t, creds.Has(credential.KeyToken))
}

func TestRestoreWithoutTokenUnauthenticates(t *testing.T) {
	creds := testutil.NewFakeCreds()
	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	}))

	require.Equal(t, StateUnauthenticated, m.Restore(context.Background()))
	require.Nil(t, m.CurrentUser())
}

func TestRestoreValidTokenAuthenticatesAndRefreshesProfile(t *testing.T) {
	creds := testutil.NewFakeCreds()
	creds.Seed(credential.KeyToken, "tok-1")

	var gotAuth string
	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		testutil.WriteJSON(w, 200, `{"success": true, "user": `+userJSON+`}`)
	}))

	require.Equal(t, StateAuthenticated, m.Restore(context.Background()))
	require.Equal(t, "Token tok-1", gotAuth)
	require.Equal(t, "alice", m.CurrentUser().Username)
	require.True(t, creds.Has(credential.KeyUser))
}

func TestRestoreRejectedTokenClearsCredentialOnce(t *testing.T) {
	creds := testutil.NewFakeCreds()
	creds.Seed(credential.KeyToken, "stale")

	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 401, `{"detail": "Invalid token."}`)
	}))

	require.Equal(t, StateUnauthenticated, m.Restore(context.Background()))
	require.False(t, creds.Has(credential.KeyToken))
	// One wipe from the 401 callback; Restore's follow-up clear sees an
	// already-empty session. Each wipe deletes both stored keys.
	require.Equal(t, 4, creds.DeleteCalls)
}

func TestUnauthorizedMidSessionForcesUnauthenticated(t *testing.T) {
	creds := testutil.NewFakeCreds()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200,
			`{"success": true, "user": `+userJSON+`, "token": "tok-1", "message": "ok"}`)
	})
	mux.HandleFunc("/api/stats/", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 401, `{"detail": "Invalid token."}`)
	})
	m := newManager(t, creds, mux)

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = m.API().Stats(context.Background())
	require.True(t, api.IsAuthError(err))
	require.Equal(t, StateUnauthenticated, m.State())
	require.False(t, creds.Has(credential.KeyToken))
}

func TestLogoutAlwaysClearsLocalState(t *testing.T) {
	creds := testutil.NewFakeCreds()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 200,
			`{"success": true, "user": `+userJSON+`, "token": "tok-1", "message": "ok"}`)
	})
	mux.HandleFunc("/api/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, 500, `{"error": "boom"}`)
	})
	m := newManager(t, creds, mux)

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)

	m.Logout(context.Background())
	require.Equal(t, StateUnauthenticated, m.State())
	require.Nil(t, m.CurrentUser())
	require.False(t, creds.Has(credential.KeyToken))
	require.False(t, creds.Has(credential.KeyUser))
}

func TestRegisterAuthenticatesImmediately(t *testing.T) {
	creds := testutil.NewFakeCreds()
	m := newManager(t, creds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register/", r.URL.Path)
		testutil.WriteJSON(w, 201,
			`{"success": true, "user": `+userJSON+`, "token": "tok-2", "message": "Registration successful"}`)
	}))

	user, err := m.Register(context.Background(), api.Registration{
		Username: "alice", Email: "alice@example.com",
		Password: "secret123", Password2: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, StateAuthenticated, m.State())
	require.True(t, creds.Has(credential.KeyToken))
}
