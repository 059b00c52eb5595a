package cache

import (
	"strings"

	"VoxStudio/pkg/errors"
)

// NewCache 创建缓存实例
func NewCache(config Config) (Cache, error) {
	switch strings.ToLower(config.Type) {
	case "", "gocache", "local":
		return NewGoCache(config.Local), nil
	case "lru":
		return NewLRUCache(config.Local)
	case "redis":
		return NewRedisCache(config.Redis)
	default:
		return nil, errors.Errorf("unsupported cache type: %s", config.Type)
	}
}
