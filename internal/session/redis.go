package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores entries as plain string keys with a TTL.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisBackend(ctx context.Context, opts RedisOptions) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisBackendFromClient(client, opts.TTL), nil
}

func NewRedisBackendFromClient(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl, prefix: "blogger:session:"}
}

func (b *RedisBackend) Load(ctx context.Context, scope string, key string) (string, bool, error) {
	value, err := b.client.Get(ctx, b.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load session entry: %w", err)
	}
	return value, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, scope string, key string, value string) error {
	if err := b.client.Set(ctx, b.key(scope, key), value, b.ttl).Err(); err != nil {
		return fmt.Errorf("save session entry: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, scope string, key string) error {
	if err := b.client.Del(ctx, b.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("delete session entry: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) key(scope string, key string) string {
	return b.prefix + scope + ":" + key
}
