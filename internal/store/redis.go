package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// Redis stores keys under a configurable prefix
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures the redis backend
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedis connects to redis and verifies the connection
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &domain.StoreError{Op: "open", Err: err}
	}
	return NewRedisWithClient(client, opts.Prefix), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// key namespaces a store key under the configured prefix
func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	return getResult(key, value, err)
}

// getResult maps a GET reply onto the KeyValue contract. A missing key is
// redis.Nil and reads as absent rather than failed.
func getResult(key, value string, err error) (string, bool, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, &domain.StoreError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return &domain.StoreError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return &domain.StoreError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
