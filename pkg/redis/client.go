// Package redis holds the process-wide client used for the idempotency
// replay cache. Keys are short-lived; nothing here is a system of record.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init connects using a redis URL (redis://host:port/db). A non-empty
// password overrides whatever the URL carries. Fails fast on an
// unreachable server rather than at first use.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient swaps the client, used by tests to point at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the shared client.
func GetClient() *redis.Client {
	return client
}

// Set stores a key with expiration.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX sets a key only if it does not already exist.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
