package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogcms/internal/config"

	"github.com/redis/go-redis/v9"
)

// Redis 基于 Redis 的共享缓存，所有键带统一前缀
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis 初始化 Redis 客户端
func NewRedis(cfg config.RedisConfig) *Redis {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "blog"
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
}

// Client 获取底层 Redis 客户端
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Get 获取缓存
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set 写入缓存
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.buildKey(key), value, ttl).Err()
}

// Del 删除缓存
func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = r.buildKey(key)
	}
	return r.client.Del(ctx, full...).Err()
}

func (r *Redis) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return r.prefix
	}
	return r.prefix + ":" + trimmed
}
