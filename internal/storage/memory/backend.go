package memory

import (
	"context"
	"sync"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// Backend holds at most one credential record in memory.
type Backend struct {
	mu     sync.RWMutex
	creds  *domain.Credentials
	closed bool
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{}
}

// Load returns a copy of the stored record.
func (b *Backend) Load(ctx context.Context) (*domain.Credentials, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, domain.ErrStoreClosed
	}
	if b.creds.Empty() {
		return nil, domain.ErrNoCredential
	}
	return b.creds.Clone(), nil
}

// Save replaces the stored record.
func (b *Backend) Save(ctx context.Context, creds *domain.Credentials) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrStoreClosed
	}
	b.creds = creds.Clone()
	return nil
}

// Delete drops the stored record. Deleting nothing is not an error.
func (b *Backend) Delete(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrStoreClosed
	}
	b.creds = nil
	return nil
}

// Close marks the backend closed.
func (b *Backend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}
