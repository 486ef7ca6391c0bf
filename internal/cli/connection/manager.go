package connection

import (
	"errors"
	"sync"
)

// ErrNotConfigured is returned by Manager.Current before Connect.
var ErrNotConfigured = errors.New("no SharePay server configured")

// Profile is everything needed to build a Dispatcher.
type Profile struct {
	Server  string
	Store   TokenStore
	Options []Option
}

// Manager owns the dispatcher for the active server profile.
type Manager struct {
	mu      sync.RWMutex
	profile *Profile
	current *Dispatcher
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect builds a dispatcher for p and makes it current.
func (m *Manager) Connect(p *Profile) (*Dispatcher, error) {
	if p == nil || p.Server == "" {
		return nil, ErrNotConfigured
	}
	d := NewDispatcher(p.Server, p.Store, p.Options...)

	m.mu.Lock()
	m.profile = p
	m.current = d
	m.mu.Unlock()
	return d, nil
}

// Disconnect forgets the current dispatcher.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.profile = nil
	m.current = nil
	m.mu.Unlock()
}

// Current returns the active dispatcher.
func (m *Manager) Current() (*Dispatcher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, ErrNotConfigured
	}
	return m.current, nil
}

// Server returns the active server, or "".
func (m *Manager) Server() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return ""
	}
	return m.profile.Server
}

// IsConnected reports whether a dispatcher is active.
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
