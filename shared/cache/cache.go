// Package cache keeps JSON documents in redis: list responses, pending orders and limiter counters.
package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/shared/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Nil is returned, wrapped, by Get when the key does not exist.
const Nil = redis.Nil

const (
	scopeName    = "cache"
	attrKey      = "cache.key"
	scanBatch    = 200
	resultHit    = "hit"
	resultMiss   = "miss"
	resultFailed = "error"
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{client: client, otel: ot}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, scopeName, scopeName+"."+op)
	scope.SetAttribute(attrKey, key)

	return ctx, scope
}

// encode stores strings as-is so plain values stay readable in redis.
func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}

func decode(raw string, value any) error {
	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	return json.Unmarshal([]byte(raw), value) //nolint:wrapcheck
}

// Save stores value under key for duration seconds; zero means no expiry.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache write failed")

		return fmt.Errorf("write cache value %q: %w", key, err)
	}

	return nil
}

// Get decodes the value stored under key into value.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := c.client.Get(ctx, key).Result()

	switch {
	case errors.Is(err, Nil):
		metrics.CacheLookups.WithLabelValues(resultMiss).Inc()

		return fmt.Errorf("cache miss %q: %w", key, err)
	case err != nil:
		metrics.CacheLookups.WithLabelValues(resultFailed).Inc()
		scope.TraceError(err)

		return fmt.Errorf("read cache value %q: %w", key, err)
	}

	metrics.CacheLookups.WithLabelValues(resultHit).Inc()

	if err = decode(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("cache value is not decodable")

		return fmt.Errorf("decode cache value %q: %w", key, err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete cache value %q: %w", key, err)
	}

	return nil
}

// Clear unlinks every key matching the glob pattern, one scan batch at a time.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan cache keys %q: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("unlink cache keys %q: %w", pattern, err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}
