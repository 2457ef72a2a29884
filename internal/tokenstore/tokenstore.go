// Package tokenstore keeps client-side credentials between simulated
// sessions, the way a device keychain would. Entries are keyed by service
// and account so one store can hold a session token, a remember-me series
// and its cookie token side by side.
package tokenstore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no credential is stored under the
// given service and account.
var ErrNotFound = errors.New("tokenstore: credential not found")

type Store interface {
	Save(service, account, value string) error
	Load(service, account string) (string, error)
	Delete(service, account string) error
}

// Memory is the in-process Store. Saving under an existing key overwrites;
// deleting an absent key is a no-op, matching keychain semantics.
type Memory struct {
	mu      sync.RWMutex
	entries map[key]string
}

type key struct {
	service string
	account string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[key]string)}
}

func (m *Memory) Save(service, account, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key{service, account}] = value
	return nil
}

func (m *Memory) Load(service, account string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key{service, account}]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key{service, account})
	return nil
}
