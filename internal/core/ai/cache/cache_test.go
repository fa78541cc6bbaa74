package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(maxSize int, ttl time.Duration) (*CacheManager, *time.Time) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	m := NewManager(config.CacheConfig{MaxSize: maxSize, TTL: ttl})
	m.now = func() time.Time { return now }
	return m, &now
}

func TestCacheManager_GetSet(t *testing.T) {
	m, _ := newTestManager(10, time.Hour)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "k1")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k1", "v1"))
	val, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", val)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestCacheManager_Expiry(t *testing.T) {
	m, now := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k1", "v1"))
	*now = now.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k1")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.Stats()["size"])
}

func TestCacheManager_EvictsLeastUsed(t *testing.T) {
	m, now := newTestManager(2, time.Hour)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "hot", "1"))
	*now = now.Add(time.Second)
	require.NoError(t, m.Set(ctx, "cold", "2"))
	_, err := m.Get(ctx, "hot")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "new", "3"))

	_, err = m.Get(ctx, "cold")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	val, err := m.Get(ctx, "hot")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
	assert.Equal(t, int64(1), m.Stats()["evictions"])
}

func TestCacheManager_OverwriteAtCapacity(t *testing.T) {
	m, _ := newTestManager(1, time.Hour)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "a"))
	require.NoError(t, m.Set(ctx, "k", "b"))
	val, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "b", val)
	assert.Equal(t, int64(0), m.Stats()["evictions"])
}

func TestRedisCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, time.Hour)
	ctx := context.Background()

	mock.ExpectGet(KeyPrefix + "abc").SetErr(redis.Nil)
	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	mock.ExpectSet(KeyPrefix+"abc", "cached text", time.Hour).SetVal("OK")
	require.NoError(t, c.Set(ctx, "abc", "cached text"))

	mock.ExpectGet(KeyPrefix + "abc").SetVal("cached text")
	val, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "cached text", val)

	mock.ExpectGet(KeyPrefix + "down").SetErr(errors.New("connection refused"))
	_, err = c.Get(ctx, "down")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrCacheMiss)

	assert.Equal(t, int64(1), c.Stats()["hits"])
	assert.Equal(t, int64(1), c.Stats()["misses"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	c, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	cfg.Cache = config.CacheConfig{Enabled: true, Backend: config.CacheMemory, MaxSize: 5, TTL: time.Minute}
	c, err = New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &CacheManager{}, c)
	_ = c.Close()

	cfg.Cache.Backend = config.CacheRedis
	_, err = New(cfg, nil)
	assert.Error(t, err)

	db, _ := redismock.NewClientMock()
	c, err = New(cfg, db)
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)
}
