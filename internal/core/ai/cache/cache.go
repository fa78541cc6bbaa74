package cache

import (
	"context"
	"fmt"

	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Cache AI 回應快取，未命中時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取；停用時回傳 nil
func New(cfg *config.Config, rdb *redis.Client) (Cache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return NewManager(cfg.Cache), nil
	case config.CacheRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis cache requires a redis client")
		}
		return NewRedisCache(rdb, cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Cache.Backend)
	}
}
