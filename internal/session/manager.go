// Package session owns the authentication lifecycle: it is the single
// source of truth for whether the client is authenticated and the sole
// writer of the persisted credential. The API client reads the token
// through a callback and reports credential rejections back here, so
// the transport stays free of session and navigation side effects.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nhle/compliance-tracker/internal/api"
	"github.com/nhle/compliance-tracker/internal/credential"
	"github.com/nhle/compliance-tracker/internal/model"
)

// State is the authentication state consumed by route guards.
type State int

const (
	// StateLoading is the transient startup state, held only until the
	// initial Restore resolves. Views must suspend routing decisions
	// while it lasts.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Manager drives the session state machine:
//
//	Unauthenticated --Login/Register(success)--> Authenticated
//	Unauthenticated --Restore(valid token)-----> Authenticated
//	Authenticated   --Logout-------------------> Unauthenticated
//	Authenticated   --any request answers 401--> Unauthenticated
//
// Methods are safe for use from Bubble Tea command goroutines.
type Manager struct {
	mu    sync.Mutex
	creds credential.Store
	api   *api.Client
	state State
	token string
	user  *model.User
}

// NewManager builds a Manager and its API client. The client reads the
// credential via tokenFor and reports 401s via sessionExpired.
func NewManager(creds credential.Store, baseURL string, timeout time.Duration) *Manager {
	m := &Manager{
		creds: creds,
		state: StateLoading,
	}
	m.api = api.NewClient(baseURL, api.Options{
		TokenFunc:      m.tokenFor,
		OnUnauthorized: m.sessionExpired,
		Timeout:        timeout,
	})
	m.loadPersisted()
	return m
}

// API returns the client bound to this session.
func (m *Manager) API() *api.Client {
	return m.api
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the authenticated profile, or nil.
func (m *Manager) CurrentUser() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Login authenticates with the backend. On success the credential and
// profile are persisted and the session becomes Authenticated. On
// failure the state is untouched and the error propagates unmodified.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.persist(res)
	return &res.User, nil
}

// Register creates an account; the backend performs the authoritative
// validation and returns the same credential/user pair as Login.
func (m *Manager) Register(ctx context.Context, reg api.Registration) (*model.User, error) {
	res, err := m.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	m.persist(res)
	return &res.User, nil
}

// Logout invalidates the credential server-side and clears local state.
// The backend call's outcome is ignored: logout never fails observably.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		_ = m.api.Logout(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Restore validates any persisted credential against the backend. It is
// invoked once per process lifetime at startup and resolves the Loading
// state: a valid token yields Authenticated, anything else clears the
// credential and yields Unauthenticated.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == "" {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.clearLocked()
		return m.state
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.clearLocked()
		return m.state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.state = StateAuthenticated
	if data, err := json.Marshal(user); err == nil {
		_ = m.creds.Set(credential.KeyUser, string(data))
	}
	return m.state
}

// tokenFor supplies the credential attached to outbound requests.
func (m *Manager) tokenFor() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// sessionExpired handles a 401 from any request: the persisted
// credential is cleared exactly once and the session is forced to
// Unauthenticated.
func (m *Manager) sessionExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" && m.state != StateAuthenticated {
		m.state = StateUnauthenticated
		return
	}
	m.clearLocked()
}

// persist stores the credential/user pair and marks the session
// Authenticated.
func (m *Manager) persist(res *api.AuthResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = res.Token
	user := res.User
	m.user = &user
	m.state = StateAuthenticated

	_ = m.creds.Set(credential.KeyToken, res.Token)
	if data, err := json.Marshal(res.User); err == nil {
		_ = m.creds.Set(credential.KeyUser, string(data))
	}
}

// clearLocked wipes the in-memory and persisted credential and profile.
// Callers must hold mu.
func (m *Manager) clearLocked() {
	m.token = ""
	m.user = nil
	m.state = StateUnauthenticated
	_ = m.creds.Delete(credential.KeyToken)
	_ = m.creds.Delete(credential.KeyUser)
}

// loadPersisted primes the in-memory credential from the store so the
// first Restore can validate it.
func (m *Manager) loadPersisted() {
	token, err := m.creds.Get(credential.KeyToken)
	if err != nil {
		return
	}
	m.token = token

	if data, err := m.creds.Get(credential.KeyUser); err == nil {
		var user model.User
		if json.Unmarshal([]byte(data), &user) == nil {
			m.user = &user
		}
	}
}
