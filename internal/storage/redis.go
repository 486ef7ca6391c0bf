package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// DefaultRedisKey is the hash key used when none is configured.
const DefaultRedisKey = "sharepay:credentials"

const (
	fieldAccess    = "access_token"
	fieldRefresh   = "refresh_token"
	fieldUpdatedAt = "updated_at"
)

// RedisBackend stores the credential record as a Redis hash, so several
// agents pointed at the same key share one login.
type RedisBackend struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	owned  bool
}

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithRedisTTL expires the record ttl after each save. Zero keeps it forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(b *RedisBackend) {
		b.ttl = ttl
	}
}

// NewRedisBackend wraps an existing client. Close leaves the client open.
func NewRedisBackend(client *redis.Client, key string, opts ...RedisOption) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	b := &RedisBackend{client: client, key: key}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DialRedisBackend connects to addr and pings it.
func DialRedisBackend(ctx context.Context, addr, key string, opts ...RedisOption) (*RedisBackend, error) {
	if addr == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("redis: addr is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, domain.ErrStorage.Wrap(fmt.Errorf("redis: ping %s: %w", addr, err))
	}
	b := NewRedisBackend(client, key, opts...)
	b.owned = true
	return b, nil
}

// Load reads the hash.
func (b *RedisBackend) Load(ctx context.Context) (*domain.Credentials, error) {
	fields, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, redisErr(err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNoCredential
	}

	creds := &domain.Credentials{
		AccessToken:  fields[fieldAccess],
		RefreshToken: fields[fieldRefresh],
	}
	if ts := fields[fieldUpdatedAt]; ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, domain.ErrCredentialCorrupt.Wrap(err)
		}
		creds.UpdatedAt = t
	}
	if creds.Empty() {
		return nil, domain.ErrNoCredential
	}
	return creds, nil
}

// Save replaces the hash in one MULTI/EXEC.
func (b *RedisBackend) Save(ctx context.Context, creds *domain.Credentials) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		pipe.HSet(ctx, b.key,
			fieldAccess, creds.AccessToken,
			fieldRefresh, creds.RefreshToken,
			fieldUpdatedAt, creds.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if b.ttl > 0 {
			pipe.Expire(ctx, b.key, b.ttl)
		}
		return nil
	})
	if err != nil {
		return redisErr(err)
	}
	return nil
}

// Delete removes the hash.
func (b *RedisBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key).Err(); err != nil {
		return redisErr(err)
	}
	return nil
}

// Close closes the client if this backend dialed it.
func (b *RedisBackend) Close() error {
	if !b.owned {
		return nil
	}
	if err := b.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return domain.ErrStorage.Wrap(err)
	}
	return nil
}

func redisErr(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return domain.ErrStoreClosed
	}
	return domain.ErrStorage.Wrap(err)
}
