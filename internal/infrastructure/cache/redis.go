package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school-api/internal/config"
	interfaces "school-api/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisCache caches catalog entity details. It is advisory: validators never
// read it, so a stale or missing entry only costs a database round trip.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

// NewRedisCacheWithConfig builds the cache from the cache section of the
// application config.
func NewRedisCacheWithConfig(cfg *config.CacheConfig) *RedisCache {
	return NewRedisCache(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.Password, cfg.DB)
}

var _ interfaces.CacheService = (*RedisCache)(nil)

func entityKey(kind string, id uuid.UUID) string {
	return fmt.Sprintf("%s:details:%s", kind, id.String())
}

func (r *RedisCache) GetEntity(ctx context.Context, kind string, id uuid.UUID) ([]byte, error) {
	val, err := r.client.Get(ctx, entityKey(kind, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("%s details not cached", kind)
		}
		return nil, fmt.Errorf("failed to get %s details: %w", kind, err)
	}
	return []byte(val), nil
}

func (r *RedisCache) SetEntity(ctx context.Context, kind string, id uuid.UUID, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s details: %w", kind, err)
	}

	if err := r.client.Set(ctx, entityKey(kind, id), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s details: %w", kind, err)
	}

	return nil
}

func (r *RedisCache) InvalidateEntity(ctx context.Context, kind string, id uuid.UUID) error {
	return r.Delete(ctx, entityKey(kind, id))
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("key %s not cached", key)
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Clear(ctx context.Context, pattern string) error {
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("failed to get keys for pattern %s: %w", pattern, err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys: %w", err)
		}
	}

	return nil
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
