package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewServer starts a backend stand-in with the given handler. It is
// automatically shut down when the test completes.
func NewServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
