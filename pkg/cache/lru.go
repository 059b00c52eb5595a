package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// lruCache 基于 hashicorp/golang-lru 的定容缓存
type lruCache struct {
	cache *lru.LRU[string, interface{}]
}

// NewLRUCache 创建LRU缓存
func NewLRUCache(config LocalConfig) (Cache, error) {
	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = 1000
	}
	ttl := config.DefaultExpiration
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &lruCache{cache: lru.NewLRU[string, interface{}](maxSize, nil, ttl)}, nil
}

// Get 获取缓存值
func (lc *lruCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return lc.cache.Get(key)
}

// Set 设置缓存值（过期时间由缓存级 TTL 统一控制）
func (lc *lruCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	lc.cache.Add(key, value)
	return nil
}

// Delete 删除缓存
func (lc *lruCache) Delete(ctx context.Context, key string) error {
	lc.cache.Remove(key)
	return nil
}

// Exists 检查键是否存在
func (lc *lruCache) Exists(ctx context.Context, key string) bool {
	return lc.cache.Contains(key)
}

// Clear 清空所有缓存
func (lc *lruCache) Clear(ctx context.Context) error {
	lc.cache.Purge()
	return nil
}

// Close 关闭缓存连接
func (lc *lruCache) Close() error {
	return nil
}
