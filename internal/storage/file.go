package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/pkg/crypto/adaptive"
	"github.com/sharepay/sharepay-go/pkg/token"
)

const (
	credentialFileMode = 0o600
	credentialDirMode  = 0o700

	keyPurpose = "credentials"
)

// credentialAAD binds sealed records to their role.
var credentialAAD = []byte("sharepay-credentials-v1")

// FileBackend stores the credential record sealed with an AEAD cipher in
// a single file. The encryption key is derived from a random per-install
// secret kept next to it, so a copied credential file is useless alone.
type FileBackend struct {
	mu      sync.Mutex
	path    string
	keyPath string
	cipher  adaptive.Cipher
	key     []byte
	closed  bool
}

// NewFileBackend opens (creating if needed) the key file and prepares the
// cipher. The credential file itself is only touched on use.
func NewFileBackend(path, keyPath string) (*FileBackend, error) {
	if path == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("credentials path is required")
	}
	if keyPath == "" {
		keyPath = path + ".key"
	}

	secret, err := loadOrCreateSecret(keyPath)
	if err != nil {
		return nil, domain.ErrStorage.Wrap(err)
	}
	key, err := adaptive.DeriveKey(secret, keyPurpose)
	zero(secret)
	if err != nil {
		return nil, domain.ErrStorage.Wrap(err)
	}
	c, err := adaptive.New(key)
	if err != nil {
		return nil, domain.ErrStorage.Wrap(err)
	}

	return &FileBackend{
		path:    path,
		keyPath: keyPath,
		cipher:  c,
		key:     key,
	}, nil
}

// Path returns the credential file location.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads and opens the sealed record.
func (b *FileBackend) Load(ctx context.Context) (*domain.Credentials, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, domain.ErrStoreClosed
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoCredential
	}
	if err != nil {
		return nil, domain.ErrStorage.Wrap(err)
	}

	plain, err := adaptive.Open(b.key, string(data), credentialAAD)
	if err != nil {
		return nil, domain.ErrCredentialCorrupt.Wrap(err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, domain.ErrCredentialCorrupt.Wrap(err)
	}
	if creds.Empty() {
		return nil, domain.ErrNoCredential
	}
	return &creds, nil
}

// Save seals creds and atomically replaces the file.
func (b *FileBackend) Save(ctx context.Context, creds *domain.Credentials) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrStoreClosed
	}

	plain, err := json.Marshal(creds)
	if err != nil {
		return domain.ErrStorage.Wrap(err)
	}
	sealed, err := adaptive.Seal(b.cipher, plain, credentialAAD)
	if err != nil {
		return domain.ErrStorage.Wrap(err)
	}
	if err := writeFileAtomic(b.path, []byte(sealed+"\n")); err != nil {
		return domain.ErrStorage.Wrap(err)
	}
	return nil
}

// Delete removes the credential file. The key file stays.
func (b *FileBackend) Delete(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrStoreClosed
	}
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.ErrStorage.Wrap(err)
	}
	return nil
}

// Close wipes the derived key from memory.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		zero(b.key)
		b.closed = true
	}
	return nil
}

func loadOrCreateSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) < adaptive.KeySize {
			return nil, fmt.Errorf("key file %s is truncated", path)
		}
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	secret, err := token.GenerateBytes(adaptive.KeySize)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, secret); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return secret, nil
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, credentialDirMode); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(credentialFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return os.Rename(tmpName, path)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
