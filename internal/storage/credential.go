package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
	"github.com/sharepay/sharepay-go/pkg/token"
)

// Backend persists one credential record.
//
// Load returns domain.ErrNoCredential when nothing is stored. Delete on an
// empty backend succeeds.
type Backend interface {
	Load(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, creds *domain.Credentials) error
	Delete(ctx context.Context) error
	Close() error
}

// CredentialStore is the single source of truth for the current session
// token. It is safe for concurrent use; read-modify-write cycles against
// the backend are serialized within the process.
type CredentialStore struct {
	mu      sync.Mutex
	backend Backend
	logger  logger.Logger
	now     func() time.Time
}

// Option configures a CredentialStore.
type Option func(*CredentialStore)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *CredentialStore) {
		s.logger = l
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *CredentialStore) {
		s.now = now
	}
}

// NewCredentialStore wraps backend.
func NewCredentialStore(backend Backend, opts ...Option) *CredentialStore {
	s := &CredentialStore{
		backend: backend,
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current access token, or domain.ErrNoCredential.
func (s *CredentialStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.backend.Load(ctx)
	if err != nil {
		return "", err
	}
	if creds.AccessToken == "" {
		return "", domain.ErrNoCredential
	}
	return creds.AccessToken, nil
}

// Has reports whether an access token is stored. Backend failures count
// as absent.
func (s *CredentialStore) Has(ctx context.Context) bool {
	_, err := s.Get(ctx)
	return err == nil
}

// Set replaces the access token and keeps the refresh credential.
func (s *CredentialStore) Set(ctx context.Context, tok string) error {
	if tok == "" {
		return domain.ErrInvalidArgument.WithDetails("empty access token")
	}
	return s.update(ctx, func(c *domain.Credentials) {
		c.AccessToken = tok
	})
}

// RefreshToken returns the stored refresh credential, or
// domain.ErrNoCredential.
func (s *CredentialStore) RefreshToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.backend.Load(ctx)
	if err != nil {
		return "", err
	}
	if creds.RefreshToken == "" {
		return "", domain.ErrNoCredential
	}
	return creds.RefreshToken, nil
}

// SetRefreshToken replaces the refresh credential and keeps the access token.
func (s *CredentialStore) SetRefreshToken(ctx context.Context, tok string) error {
	if tok == "" {
		return domain.ErrInvalidArgument.WithDetails("empty refresh token")
	}
	return s.update(ctx, func(c *domain.Credentials) {
		c.RefreshToken = tok
	})
}

// SetSession stores a fresh login. An empty refresh token clears any
// previous one.
func (s *CredentialStore) SetSession(ctx context.Context, access, refresh string) error {
	if access == "" {
		return domain.ErrInvalidArgument.WithDetails("empty access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds := &domain.Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		UpdatedAt:    s.now(),
	}
	if err := s.backend.Save(ctx, creds); err != nil {
		return err
	}
	s.logger.Debug("session stored", "token_fp", token.Fingerprint(access))
	return nil
}

// Clear removes both tokens.
func (s *CredentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx); err != nil {
		return err
	}
	s.logger.Debug("credentials cleared")
	return nil
}

// RegisterMetrics registers the backend's collectors, if it has any.
func (s *CredentialStore) RegisterMetrics(reg prometheus.Registerer) error {
	if m, ok := s.backend.(interface {
		RegisterMetrics(prometheus.Registerer) error
	}); ok {
		return m.RegisterMetrics(reg)
	}
	return nil
}

// Close releases the backend.
func (s *CredentialStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

func (s *CredentialStore) update(ctx context.Context, fn func(*domain.Credentials)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.backend.Load(ctx)
	if errors.Is(err, domain.ErrNoCredential) {
		creds = &domain.Credentials{}
	} else if err != nil {
		return err
	}

	fn(creds)
	creds.UpdatedAt = s.now()

	if err := s.backend.Save(ctx, creds); err != nil {
		return err
	}
	s.logger.Debug("credentials updated", "token_fp", token.Fingerprint(creds.AccessToken))
	return nil
}
