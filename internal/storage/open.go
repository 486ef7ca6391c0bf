package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of file, memory, badger, redis. Default: file.
	Backend string

	// Path is the credential file (file) or database directory (badger).
	Path string

	// RedisAddr is host:port of the Redis server.
	RedisAddr string

	// RedisKey is the hash key. Default: DefaultRedisKey.
	RedisKey string
}

// DefaultConfig stores credentials in a sealed file under dir.
func DefaultConfig(dir string) Config {
	return Config{
		Backend: BackendFile,
		Path:    filepath.Join(dir, "credentials"),
	}
}

// Open builds a CredentialStore on the configured backend.
func Open(ctx context.Context, cfg Config, log logger.Logger) (*CredentialStore, error) {
	if log == nil {
		log = logger.Discard()
	}

	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Debug("credential store opened", "backend", backendName(cfg.Backend))
	return NewCredentialStore(backend, WithLogger(log)), nil
}

func openBackend(ctx context.Context, cfg Config, log logger.Logger) (Backend, error) {
	switch backendName(cfg.Backend) {
	case BackendFile:
		return NewFileBackend(cfg.Path, "")
	case BackendMemory:
		return memory.New(), nil
	case BackendBadger:
		bc := DefaultBadgerConfig(cfg.Path)
		return NewBadgerBackend(bc, log.With("component", "badger"))
	case BackendRedis:
		return DialRedisBackend(ctx, cfg.RedisAddr, cfg.RedisKey)
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unknown credentials backend: " + cfg.Backend)
	}
}

func backendName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendFile
	}
	return name
}
