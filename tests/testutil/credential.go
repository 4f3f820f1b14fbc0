package testutil

import (
	"sync"

	"github.com/nhle/compliance-tracker/internal/credential"
)

// FakeCreds is an in-memory credential.Store that counts writes and
// deletions, so tests can assert how often the persisted session was
// touched.
type FakeCreds struct {
	mu          sync.Mutex
	values      map[string]string
	SetCalls    int
	DeleteCalls int
}

// NewFakeCreds creates an empty in-memory credential store.
func NewFakeCreds() *FakeCreds {
	return &FakeCreds{values: map[string]string{}}
}

// Get returns a stored value or credential.ErrNotFound.
func (f *FakeCreds) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", credential.ErrNotFound
	}
	return v, nil
}

// Set stores a value.
func (f *FakeCreds) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.SetCalls++
	return nil
}

// Delete removes a value; deleting an absent key is not an error.
func (f *FakeCreds) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	f.DeleteCalls++
	return nil
}

// Seed stores a value without counting it as a write.
func (f *FakeCreds) Seed(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Has reports whether a key is currently stored.
func (f *FakeCreds) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.values[key]
	return ok
}
