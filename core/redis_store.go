// Redis-backed implementation of the Memory interface.
//
// A hosted deployment of the storefront keeps per-device basket snapshots in
// Redis rather than on-device storage. Keys are namespaced to prevent
// collisions between storefront installations sharing one Redis:
//
//	storefront:<namespace>:<key>
//
// Connection management: the client pools connections, verifies connectivity
// with a Ping at construction, and supports graceful Close.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore implements Memory over a Redis connection with key namespacing.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    Logger
}

// RedisStoreOptions configures the Redis store
type RedisStoreOptions struct {
	RedisURL  string
	Namespace string // Key namespace for organization
	Logger    Logger // Optional logger
}

// NewRedisStore creates a Redis-backed Memory with the specified options.
func NewRedisStore(opts RedisStoreOptions) (*RedisStore, error) {
	logger := opts.Logger
	if logger == nil {
		logger = &NoOpLogger{}
	}

	if opts.RedisURL == "" {
		logger.Error("Failed to initialize Redis store", map[string]interface{}{
			"error":      "Redis URL is required",
			"error_type": "ErrInvalidConfiguration",
		})
		return nil, fmt.Errorf("redis URL is required: %w", ErrInvalidConfiguration)
	}

	redisOpt, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		logger.Error("Failed to parse Redis URL", map[string]interface{}{
			"error":     err,
			"redis_url": opts.RedisURL,
		})
		return nil, fmt.Errorf("invalid Redis URL: %w", ErrInvalidConfiguration)
	}

	client := redis.NewClient(redisOpt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", map[string]interface{}{
			"error":     err,
			"namespace": opts.Namespace,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", ErrConnectionFailed)
	}

	rs := &RedisStore{
		client:    client,
		namespace: opts.Namespace,
		logger:    logger,
	}

	rs.logger.Info("Redis store connected", map[string]interface{}{
		"namespace": opts.Namespace,
	})

	return rs, nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	err := r.client.Close()
	if err != nil {
		r.logger.Error("Failed to close Redis store", map[string]interface{}{
			"error":     err,
			"namespace": r.namespace,
		})
	}
	return err
}

// Namespace returns the namespace being used
func (r *RedisStore) Namespace() string {
	return r.namespace
}

// formatKey formats a key with the namespace
func (r *RedisStore) formatKey(key string) string {
	if r.namespace != "" {
		return fmt.Sprintf("%s:%s", r.namespace, key)
	}
	return key
}

// Get retrieves a value. A missing key returns an empty string with no error,
// matching the Memory contract.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.formatKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, ErrStoreUnavailable)
	}
	return value, nil
}

// Set stores a value with optional TTL
func (r *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.formatKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, ErrStoreUnavailable)
	}
	return nil
}

// Delete removes a value
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.formatKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, ErrStoreUnavailable)
	}
	return nil
}

// Exists checks if a key exists
func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.formatKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, ErrStoreUnavailable)
	}
	return n > 0, nil
}

// HealthCheck verifies Redis connectivity
func (r *RedisStore) HealthCheck(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		r.logger.Error("Redis health check failed", map[string]interface{}{
			"error":     err,
			"namespace": r.namespace,
		})
	}
	return err
}
