package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultLRUSize = 128

type lruEntry struct {
	value     []byte
	expiresAt time.Time
}

// LRU 进程内缓存，容量满时淘汰最久未使用的条目
type LRU struct {
	entries *lru.Cache[string, lruEntry]
	now     func() time.Time
}

// NewLRU 创建容量为 size 的本地缓存，size <= 0 时使用默认容量
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = defaultLRUSize
	}
	entries, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: entries, now: time.Now}, nil
}

// Get 获取缓存，过期条目会被顺带移除
func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set 写入缓存，ttl <= 0 表示不过期
func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := lruEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, entry)
	return nil
}

// Del 删除缓存
func (c *LRU) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.entries.Remove(key)
	}
	return nil
}
