package storage

import (
	"context"
	"errors"
	"fmt"

	"fitforge/internal/core/tracker"
	"fitforge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// StateKeyPrefix Redis 中追蹤狀態的鍵前綴
const StateKeyPrefix = "fitforge:state:"

// RedisStore 以 JSON 字串保存狀態，不設過期時間
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 儲存
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, userID string) (*tracker.AppState, error) {
	data, err := s.client.Get(ctx, StateKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get state from redis: %w", err)
	}
	return decodeState(data)
}

func (s *RedisStore) Save(ctx context.Context, userID string, state *tracker.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, StateKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set state in redis: %w", err)
	}
	return nil
}

// Close 連線由建立者負責關閉
func (s *RedisStore) Close() error {
	return nil
}
