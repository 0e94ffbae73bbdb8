// Package settings persists the two values the client needs to reach the
// control host: its base URL and the auth token.
package settings

import (
	"errors"
	"sync"
)

var (
	// ErrEmptyValue is returned when a required setting is blank
	ErrEmptyValue = errors.New("settings: empty value")
	// ErrInvalidURL is returned for API URLs that are not absolute http(s) URLs
	ErrInvalidURL = errors.New("settings: invalid URL")
	// ErrClosed is returned by a store after Close
	ErrClosed = errors.New("settings: store closed")
)

// Store is a string key-value store with get/set/clear semantics.
// Get reports absence with ok == false rather than an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Clear(key string) error
}

// MemoryStore keeps settings in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
