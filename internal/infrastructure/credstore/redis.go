package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultRedisTimeout = 5 * time.Second
	defaultRedisPrefix  = "storefront"
)

// RedisConfig captures the settings for the Redis-backed store.
type RedisConfig struct {
	Addr    string
	DB      int
	Prefix  string
	Timeout time.Duration
}

// ConnectRedis initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the credential in Redis so several installations on one
// host (or a shell and a daemon) share the same login.
// Key format: <prefix>:token, plus the legacy <prefix>:role marker.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

func NewRedisStore(client *redis.Client, prefix string, logger zerolog.Logger) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (r *RedisStore) Save(ctx context.Context, credential string) error {
	if err := r.client.Set(ctx, r.tokenKey(), credential, 0).Err(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.tokenKey(), r.roleKey()).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (r *RedisStore) Read(ctx context.Context) (string, bool) {
	v, err := r.client.Get(ctx, r.tokenKey()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Msg("credential read from redis failed")
		}
		return "", false
	}
	return v, v != ""
}

func (r *RedisStore) tokenKey() string { return r.prefix + ":token" }
func (r *RedisStore) roleKey() string  { return r.prefix + ":role" }
