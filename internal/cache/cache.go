// Package cache stores short-lived JSON payloads, in process or in Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/logger"
)

// Store 缓存存储接口，值以 JSON 编码保存
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// New 按配置创建缓存：启用 Redis 时使用 Redis，否则使用进程内 LRU
func New(cacheCfg config.CacheConfig, redisCfg config.RedisConfig) (Store, error) {
	if redisCfg.Enabled {
		store := NewRedis(redisCfg)
		logger.Infow("cache_backend", "backend", "redis", "addr", store.client.Options().Addr)
		return store, nil
	}
	store, err := NewLRU(cacheCfg.Size)
	if err != nil {
		return nil, err
	}
	logger.Infow("cache_backend", "backend", "lru", "size", cacheCfg.Size)
	return store, nil
}

// GetJSON 读取并解码缓存，未命中返回 false
func GetJSON(ctx context.Context, store Store, key string, dest interface{}) (bool, error) {
	if store == nil {
		return false, nil
	}
	raw, hit, err := store.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 编码并写入缓存
func SetJSON(ctx context.Context, store Store, key string, value interface{}, ttl time.Duration) error {
	if store == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, payload, ttl)
}
