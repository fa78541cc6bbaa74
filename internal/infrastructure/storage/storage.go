package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"fitforge/internal/core/tracker"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store 追蹤狀態儲存，找不到時回傳 common.ErrStateNotFound
type Store interface {
	Load(ctx context.Context, userID string) (*tracker.AppState, error)
	Save(ctx context.Context, userID string, state *tracker.AppState) error
	Close() error
}

// New 依設定建立儲存後端
func New(cfg config.StorageConfig, rdb *redis.Client) (Store, error) {
	common.LogInfo("Opening tracker storage", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemoryStore(), nil
	case config.StorageRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis storage requires a redis client")
		}
		return NewRedisStore(rdb), nil
	case config.StorageSQLite, config.StoragePostgres:
		return OpenGormStore(cfg.Driver, cfg.DSN)
	default:
		return nil, common.ErrUnsupportedStorage.Wrap(fmt.Errorf("driver %q", cfg.Driver))
	}
}

func encodeState(state *tracker.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracker state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*tracker.AppState, error) {
	var state tracker.AppState
	if err := common.ParseJSONBytes(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode tracker state: %w", err)
	}
	return &state, nil
}
